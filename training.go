package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

const trainingLogColumns = `id, user_id, date_registered, activity_name, progress_text, created_at`

// getTrainingWeek returns the Sunday-to-Saturday week containing date, each
// day with its logged exercises and a concluded/missed/pending status.
// GET /api/training/week?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getTrainingWeek(c *gin.Context) {
	userID := c.GetInt("user_id")
	ref, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	weekStart := healthmetrics.WeekStart(ref)
	weekEnd := healthmetrics.AddDays(weekStart, 6)

	rows, err := queryMany[trainingLogRow](h.db, c,
		"SELECT "+trainingLogColumns+` FROM training_log
		 WHERE user_id = @userID AND date_registered >= @weekStart AND date_registered <= @weekEnd
		 ORDER BY date_registered, id`,
		pgx.NamedArgs{
			"userID":    userID,
			"weekStart": healthmetrics.LocalDateString(weekStart),
			"weekEnd":   healthmetrics.LocalDateString(weekEnd),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch training week")
		return
	}

	logs := make([]healthmetrics.TrainingLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, r.toTrainingLog(h.loc))
	}

	c.JSON(http.StatusOK, buildTrainingWeek(logs, weekStart, h.today()))
}

// buildTrainingWeek renders the seven days for JSON.
func buildTrainingWeek(logs []healthmetrics.TrainingLog, weekStart, today time.Time) []trainingDay {
	week := healthmetrics.BuildTrainingWeek(logs, weekStart, today)
	days := make([]trainingDay, 0, len(week))
	for _, d := range week {
		day := trainingDay{
			Date:    healthmetrics.LocalDateString(d.Date),
			Weekday: int(d.Weekday),
			Name:    d.Weekday.String(),
			Status:  d.Status,
			Entries: make([]trainingEntry, 0, len(d.Entries)),
		}
		for _, e := range d.Entries {
			day.Entries = append(day.Entries, newTrainingEntry(e))
		}
		days = append(days, day)
	}
	return days
}

// saveTrainingDay replaces the exercises logged on a day, marks the day's
// training flag, and raises personal records beaten by the new loads.
// PUT /api/training/days/:date. Exercises with a blank name are skipped; an
// empty list clears the day.
func (h *Handler) saveTrainingDay(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, err := healthmetrics.ParseLocalDate(c.Param("date"), h.loc)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	dateStr := healthmetrics.LocalDateString(date)

	var body saveTrainingDayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}
	valid := validExercises(body.Exercises)

	var saved []trainingLogRow
	var raised []string
	err = pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(c,
			"DELETE FROM training_log WHERE user_id = @userID AND date_registered = @date",
			pgx.NamedArgs{"userID": userID, "date": dateStr}); err != nil {
			return err
		}
		for _, ex := range valid {
			row, err := queryOne[trainingLogRow](tx, c,
				`INSERT INTO training_log (user_id, date_registered, activity_name, progress_text)
				 VALUES (@userID, @date, @activity, @progress)
				 RETURNING `+trainingLogColumns,
				pgx.NamedArgs{
					"userID": userID, "date": dateStr, "activity": ex.ActivityName,
					"progress": healthmetrics.FormatProgress(healthmetrics.Progress{Sets: ex.Sets, Reps: ex.Reps, Load: ex.Load}),
				})
			if err != nil {
				return err
			}
			saved = append(saved, row)
		}
		if err := setTrainingCompleted(c, tx, userID, dateStr, len(valid) > 0); err != nil {
			return err
		}
		var err error
		raised, err = raisePersonalRecords(c, tx, userID, dateStr, valid)
		return err
	})
	if err != nil {
		log.Printf("[saveTrainingDay] user %d %s: %v", userID, dateStr, err)
		apiError(c, http.StatusInternalServerError, "failed to save training")
		return
	}

	entries := make([]trainingEntry, 0, len(saved))
	for _, r := range saved {
		entries = append(entries, newTrainingEntry(r.toTrainingLog(h.loc)))
	}
	if raised == nil {
		raised = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"date":               dateStr,
		"training_completed": len(valid) > 0,
		"entries":            entries,
		"new_records":        raised,
	})
}

// validExercises drops entries without a name and trims the rest.
func validExercises(in []exerciseInput) []exerciseInput {
	out := make([]exerciseInput, 0, len(in))
	for _, ex := range in {
		ex.ActivityName = strings.TrimSpace(ex.ActivityName)
		if ex.ActivityName == "" {
			continue
		}
		ex.Sets, ex.Reps, ex.Load = strings.TrimSpace(ex.Sets), strings.TrimSpace(ex.Reps), strings.TrimSpace(ex.Load)
		out = append(out, ex)
	}
	return out
}

// raisePersonalRecords upserts a record for every exercise whose load beats
// the stored value. Returns the names of the exercises that improved.
func raisePersonalRecords(ctx context.Context, tx pgx.Tx, userID int, date string, exercises []exerciseInput) ([]string, error) {
	if len(exercises) == 0 {
		return nil, nil
	}
	current, err := queryMany[personalRecordRow](tx, ctx,
		`SELECT user_id, exercise_name, value, date_registered
		 FROM personal_records WHERE user_id = @userID`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, err
	}
	best := make(map[string]string, len(current))
	for _, r := range current {
		pr := r.toPersonalRecord(time.UTC)
		best[pr.ExerciseName] = pr.Value
	}

	var raised []string
	for _, ex := range exercises {
		if !healthmetrics.IsNewRecord(best[ex.ActivityName], ex.Load) {
			continue
		}
		if err := upsertPersonalRecordTx(ctx, tx, userID, ex.ActivityName, ex.Load, date); err != nil {
			return nil, err
		}
		best[ex.ActivityName] = ex.Load
		raised = append(raised, ex.ActivityName)
	}
	return raised, nil
}

// updateTrainingEntry rewrites one logged exercise.
// PUT /api/training/log/:id. Body fields are optional; omitted parts of the
// progress keep their current value.
func (h *Handler) updateTrainingEntry(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	var body struct {
		ActivityName *string `json:"activity_name" binding:"omitempty,min=1,max=200"`
		Sets         *string `json:"sets"          binding:"omitempty,max=20,progresssets"`
		Reps         *string `json:"reps"          binding:"omitempty,max=20,progressreps"`
		Load         *string `json:"load"          binding:"omitempty,max=40"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	existing, err := queryOne[trainingLogRow](h.db, c,
		"SELECT "+trainingLogColumns+" FROM training_log WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "training entry not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to fetch training entry")
		}
		return
	}

	progress := healthmetrics.ParseProgress(deref(existing.ProgressText))
	if body.Sets != nil {
		progress.Sets = *body.Sets
	}
	if body.Reps != nil {
		progress.Reps = *body.Reps
	}
	if body.Load != nil {
		progress.Load = *body.Load
	}

	updated, err := queryOne[trainingLogRow](h.db, c,
		`UPDATE training_log SET
			activity_name = COALESCE(@activity, activity_name),
			progress_text = @progress
		 WHERE id = @id AND user_id = @userID
		 RETURNING `+trainingLogColumns,
		pgx.NamedArgs{
			"id": id, "userID": userID, "activity": body.ActivityName,
			"progress": healthmetrics.FormatProgress(progress),
		})
	if err != nil {
		// The row can vanish between the read and the write.
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "training entry not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update training entry")
		}
		return
	}

	c.JSON(http.StatusOK, newTrainingEntry(updated.toTrainingLog(h.loc)))
}

// getStreak returns the current and longest run of trained days.
// GET /api/training/streak.
func (h *Handler) getStreak(c *gin.Context) {
	userID := c.GetInt("user_id")

	dates, err := h.trainedDatesDesc(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch training history")
		return
	}

	c.JSON(http.StatusOK, healthmetrics.Streaks(dates, h.today()))
}
