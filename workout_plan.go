package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

// planItemSelect reads plan rows from p joined with their exercise. Callers
// supply p, either the table or a CTE over it.
const planItemSelect = `SELECT p.id, p.user_id, p.exercise_id, p.weekday, p.sets, p.reps, p.notes,
	e.name AS exercise_name, e.muscle_group, e.description, e.instructions, e.image_url`

// getWorkoutPlan returns the user's weekly plan, one entry per weekday that
// has exercises, Sunday first.
// GET /api/workout-plan
func (h *Handler) getWorkoutPlan(c *gin.Context) {
	userID := c.GetInt("user_id")

	rows, err := queryMany[planItemRow](h.db, c,
		planItemSelect+` FROM workout_plan p
		 JOIN exercises e ON e.id = p.exercise_id
		 WHERE p.user_id = @userID
		 ORDER BY p.weekday, p.created_at, p.id`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workout plan")
		return
	}

	items := make([]healthmetrics.PlanItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toPlanItem())
	}
	c.JSON(http.StatusOK, healthmetrics.GroupPlanByWeekday(items))
}

// addPlanItem schedules an exercise on a weekday. Returns 201 with the item.
// POST /api/workout-plan
func (h *Handler) addPlanItem(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body planItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	row, err := queryOne[planItemRow](h.db, c,
		`WITH p AS (
			INSERT INTO workout_plan (user_id, exercise_id, weekday, sets, reps, notes)
			VALUES (@userID, @exerciseID, @weekday, @sets, @reps, @notes)
			RETURNING *
		 ) `+planItemSelect+` FROM p JOIN exercises e ON e.id = p.exercise_id`,
		planItemArgs(userID, body))
	if err != nil {
		planWriteError(c, "addPlanItem", userID, err)
		return
	}

	c.JSON(http.StatusCreated, row.toPlanItem())
}

// updatePlanItem replaces one plan item.
// PUT /api/workout-plan/:id
func (h *Handler) updatePlanItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var body planItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	args := planItemArgs(userID, body)
	args["id"] = id
	row, err := queryOne[planItemRow](h.db, c,
		`WITH p AS (
			UPDATE workout_plan
			SET exercise_id = @exerciseID, weekday = @weekday, sets = @sets, reps = @reps, notes = @notes
			WHERE id = @id AND user_id = @userID
			RETURNING *
		 ) `+planItemSelect+` FROM p JOIN exercises e ON e.id = p.exercise_id`,
		args)
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "plan item not found")
		return
	}
	if err != nil {
		planWriteError(c, "updatePlanItem", userID, err)
		return
	}

	c.JSON(http.StatusOK, row.toPlanItem())
}

// deletePlanItem removes one plan item. Returns 204 on success.
// DELETE /api/workout-plan/:id
func (h *Handler) deletePlanItem(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	tag, err := h.db.Exec(c,
		"DELETE FROM workout_plan WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		log.Printf("[deletePlanItem] user %d id %d: %v", userID, id, err)
		apiError(c, http.StatusInternalServerError, "failed to delete plan item")
		return
	}
	if tag.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "plan item not found")
		return
	}

	c.Status(http.StatusNoContent)
}

func planItemArgs(userID int, body planItemRequest) pgx.NamedArgs {
	return pgx.NamedArgs{
		"userID":     userID,
		"exerciseID": body.ExerciseID,
		"weekday":    *body.Weekday,
		"sets":       body.Sets,
		"reps":       body.Reps,
		"notes":      body.Notes,
	}
}

// planWriteError maps constraint violations on workout_plan to client errors.
func planWriteError(c *gin.Context, fn string, userID int, err error) {
	switch pgErrorCode(err) {
	case pgUniqueViolation:
		apiError(c, http.StatusConflict, "exercise is already planned for that weekday")
	case pgForeignKeyViolation:
		apiError(c, http.StatusNotFound, "exercise not found")
	default:
		log.Printf("[%s] user %d: %v", fn, userID, err)
		apiError(c, http.StatusInternalServerError, "failed to save plan item")
	}
}
