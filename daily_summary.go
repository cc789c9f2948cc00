package main

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

// loadDailySummary returns the user's summary for date. A missing row yields
// zero calories and no training rather than an error.
func (h *Handler) loadDailySummary(ctx context.Context, userID int, date time.Time) (healthmetrics.DailySummary, error) {
	row, err := queryOne[dailySummaryRow](h.db, ctx,
		`SELECT user_id, date, calories_consumed, training_completed
		 FROM daily_summary WHERE user_id = @userID AND date = @date`,
		pgx.NamedArgs{"userID": userID, "date": healthmetrics.LocalDateString(date)})
	if errors.Is(err, pgx.ErrNoRows) {
		return healthmetrics.DailySummary{UserID: userID, Date: date}, nil
	}
	if err != nil {
		return healthmetrics.DailySummary{}, err
	}
	return row.toDailySummary(h.loc), nil
}

// refreshCaloriesConsumed recomputes calories_consumed for (user, date) from
// consumed_foods and upserts it. training_completed is left alone.
func refreshCaloriesConsumed(ctx context.Context, tx pgx.Tx, userID int, date string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO daily_summary (user_id, date, calories_consumed)
		 SELECT @userID, @date::date, COALESCE(SUM(kcal), 0)
		 FROM consumed_foods WHERE user_id = @userID AND date = @date::date
		 ON CONFLICT (user_id, date) DO UPDATE SET calories_consumed = EXCLUDED.calories_consumed`,
		pgx.NamedArgs{"userID": userID, "date": date})
	return err
}

// setTrainingCompleted upserts the training flag for (user, date).
func setTrainingCompleted(ctx context.Context, tx pgx.Tx, userID int, date string, completed bool) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO daily_summary (user_id, date, training_completed)
		 VALUES (@userID, @date, @completed)
		 ON CONFLICT (user_id, date) DO UPDATE SET training_completed = EXCLUDED.training_completed`,
		pgx.NamedArgs{"userID": userID, "date": date, "completed": completed})
	return err
}

// trainedDatesDesc lists the days the user completed training, most recent
// first, as calendar days in the handler's zone.
func (h *Handler) trainedDatesDesc(ctx context.Context, userID int) ([]time.Time, error) {
	rows, err := queryMany[dailySummaryRow](h.db, ctx,
		`SELECT user_id, date, calories_consumed, training_completed
		 FROM daily_summary
		 WHERE user_id = @userID AND training_completed
		 ORDER BY date DESC`,
		pgx.NamedArgs{"userID": userID})
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(rows))
	for _, r := range rows {
		dates = append(dates, r.Date.In(h.loc))
	}
	return dates, nil
}
