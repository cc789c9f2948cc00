package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

// getHealthToday scores the day from the diary total and the training flag,
// stores the sample, and returns it with its breakdown and band.
// GET /api/health/today?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getHealthToday(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}

	p, err := h.loadProfile(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	goal := p.calorieGoal(h.cfg.DefaultCalorieGoal)

	summary, err := h.loadDailySummary(c, userID, date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch daily summary")
		return
	}

	resp, err := h.scoreSummary(summary, goal)
	if err != nil {
		if errors.Is(err, healthmetrics.ErrInvalidGoal) {
			apiError(c, http.StatusBadRequest, "daily calorie goal must be positive")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to compute health score")
		}
		return
	}

	if err := h.saveHealthScore(c, userID, resp); err != nil {
		log.Printf("[getHealthToday] user %d %s: %v", userID, resp.Date, err)
		apiError(c, http.StatusInternalServerError, "failed to save health score")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// scoreSummary runs the scorers over one day using the configured weights.
func (h *Handler) scoreSummary(s healthmetrics.DailySummary, goal float64) (healthTodayResponse, error) {
	w := h.cfg.weights()
	score, err := healthmetrics.ScoreDay(s.CaloriesConsumed, goal, s.TrainingCompleted, w)
	if err != nil {
		return healthTodayResponse{}, err
	}
	return healthTodayResponse{
		Date:             healthmetrics.LocalDateString(s.Date),
		CalorieGoal:      goal,
		CaloriesConsumed: s.CaloriesConsumed,
		Nutrition:        score.Nutrition,
		Training:         score.Training,
		Overall:          score.Overall,
		Weights:          w,
		Band:             healthmetrics.BandFor(score.Overall),
	}, nil
}

// saveHealthScore upserts the day's sample. Re-scoring a day overwrites it.
func (h *Handler) saveHealthScore(ctx context.Context, userID int, r healthTodayResponse) error {
	_, err := h.db.Exec(ctx,
		`INSERT INTO health_scores (user_id, date, percentage, nutrition, training)
		 VALUES (@userID, @date, @percentage, @nutrition, @training)
		 ON CONFLICT (user_id, date) DO UPDATE SET
			percentage = EXCLUDED.percentage,
			nutrition = EXCLUDED.nutrition,
			training = EXCLUDED.training`,
		pgx.NamedArgs{
			"userID": userID, "date": r.Date, "percentage": r.Overall,
			"nutrition": r.Nutrition, "training": r.Training,
		})
	return err
}

// getHealthHistory returns stored samples within [start, end], oldest first.
// GET /api/health/history?start=YYYY-MM-DD&end=YYYY-MM-DD. Both params required.
func (h *Handler) getHealthHistory(c *gin.Context) {
	userID := c.GetInt("user_id")
	start, end, ok := h.rangeParams(c)
	if !ok {
		return
	}

	rows, err := queryMany[healthScoreRow](h.db, c,
		`SELECT user_id, date, percentage, nutrition, training
		 FROM health_scores
		 WHERE user_id = @userID AND date >= @start AND date <= @end
		 ORDER BY date ASC`,
		pgx.NamedArgs{
			"userID": userID,
			"start":  healthmetrics.LocalDateString(start),
			"end":    healthmetrics.LocalDateString(end),
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch health history")
		return
	}
	if rows == nil {
		rows = []healthScoreRow{}
	}
	samples := make([]healthmetrics.HealthScoreSample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, r.toSample(h.loc))
	}

	c.JSON(http.StatusOK, gin.H{
		"start":   healthmetrics.LocalDateString(start),
		"end":     healthmetrics.LocalDateString(end),
		"average": healthmetrics.AverageScore(samples),
		"samples": rows,
	})
}
