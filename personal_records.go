package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

// getPersonalRecords returns the user's best load per exercise, by name.
// GET /api/personal-records. Returns an empty array (not null) if none exist.
func (h *Handler) getPersonalRecords(c *gin.Context) {
	userID := c.GetInt("user_id")

	records, err := queryMany[personalRecordRow](h.db, c,
		`SELECT user_id, exercise_name, value, date_registered
		 FROM personal_records WHERE user_id = @userID
		 ORDER BY exercise_name`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch personal records")
		return
	}
	if records == nil {
		records = []personalRecordRow{}
	}

	c.JSON(http.StatusOK, records)
}

// upsertPersonalRecord sets a record by hand, regardless of whether it beats
// the stored one. PUT /api/personal-records.
// Body: { "exercise_name": "Squat", "value": "100kg", "date": "YYYY-MM-DD" }.
func (h *Handler) upsertPersonalRecord(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body struct {
		ExerciseName string `json:"exercise_name" binding:"required,max=200"`
		Value        string `json:"value"         binding:"required,max=40"`
		Date         string `json:"date"          binding:"omitempty,datetime=2006-01-02"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}
	name := strings.TrimSpace(body.ExerciseName)
	if name == "" {
		apiError(c, http.StatusBadRequest, "exercise_name is required")
		return
	}
	date := body.Date
	if date == "" {
		date = healthmetrics.LocalDateString(h.today())
	}

	var saved personalRecordRow
	err := pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		if err := upsertPersonalRecordTx(c, tx, userID, name, strings.TrimSpace(body.Value), date); err != nil {
			return err
		}
		var err error
		saved, err = queryOne[personalRecordRow](tx, c,
			`SELECT user_id, exercise_name, value, date_registered
			 FROM personal_records WHERE user_id = @userID AND exercise_name = @name`,
			pgx.NamedArgs{"userID": userID, "name": name})
		return err
	})
	if err != nil {
		log.Printf("[upsertPersonalRecord] user %d %q: %v", userID, name, err)
		apiError(c, http.StatusInternalServerError, "failed to save personal record")
		return
	}

	c.JSON(http.StatusOK, saved)
}

// upsertPersonalRecordTx writes value as the record for exercise. The
// UNIQUE(user_id, exercise_name) constraint keeps one row per exercise.
func upsertPersonalRecordTx(ctx context.Context, tx pgx.Tx, userID int, exercise, value, date string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO personal_records (user_id, exercise_name, value, date_registered)
		 VALUES (@userID, @exercise, @value, @date)
		 ON CONFLICT (user_id, exercise_name) DO UPDATE SET
			value = EXCLUDED.value,
			date_registered = EXCLUDED.date_registered`,
		pgx.NamedArgs{"userID": userID, "exercise": exercise, "value": value, "date": date})
	return err
}
