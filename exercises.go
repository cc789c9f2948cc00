package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

const exerciseColumns = `id, name, muscle_group, description, instructions, image_url`

// getExercises returns the exercise catalog grouped by muscle group.
// GET /api/exercises
func (h *Handler) getExercises(c *gin.Context) {
	rows, err := queryMany[exerciseRow](h.db, c,
		"SELECT "+exerciseColumns+" FROM exercises ORDER BY muscle_group, name, id",
		nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch exercises")
		return
	}

	exercises := make([]healthmetrics.Exercise, 0, len(rows))
	for _, r := range rows {
		exercises = append(exercises, r.toExercise())
	}
	c.JSON(http.StatusOK, healthmetrics.GroupExercisesByMuscle(exercises))
}

// getExercise returns one catalog exercise.
// GET /api/exercises/:id
func (h *Handler) getExercise(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	row, err := queryOne[exerciseRow](h.db, c,
		"SELECT "+exerciseColumns+" FROM exercises WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "exercise not found")
		return
	}
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch exercise")
		return
	}

	c.JSON(http.StatusOK, row.toExercise())
}
