package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"lg/fit-health-api/internal/healthmetrics"
)

// Handler holds shared dependencies (db pool, config) for all route handlers.
type Handler struct {
	db  *pgxpool.Pool
	cfg *Config
	loc *time.Location   // zone that defines calendar days
	now func() time.Time // overridable for tests
}

// newHandler wires a Handler from config. db may be nil in tests that never
// reach a query.
func newHandler(db *pgxpool.Pool, cfg *Config) (*Handler, error) {
	loc, err := cfg.location()
	if err != nil {
		return nil, err
	}
	return &Handler{db: db, cfg: cfg, loc: loc, now: time.Now}, nil
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
// pgx.ErrNoRows is returned unlogged since callers treat it as a normal outcome.
func queryOne[T any](q querier, ctx context.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](q querier, ctx context.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := q.Query(ctx, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// SQLSTATE codes the handlers translate into client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// pgErrorCode returns the SQLSTATE of a Postgres error, or "" for anything else.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Date helpers ────────────────────────────────────────────────────── */

// today returns midnight of the current day in the configured zone.
func (h *Handler) today() time.Time {
	return healthmetrics.Midnight(h.now().In(h.loc))
}

// dateParam reads a YYYY-MM-DD query param, defaulting to today. On a bad
// value it writes a 400 and returns ok=false.
func (h *Handler) dateParam(c *gin.Context, name string) (time.Time, bool) {
	s := c.Query(name)
	if s == "" {
		return h.today(), true
	}
	d, err := healthmetrics.ParseLocalDate(s, h.loc)
	if err != nil {
		apiError(c, http.StatusBadRequest, fmt.Sprintf("invalid %s, expected YYYY-MM-DD", name))
		return time.Time{}, false
	}
	return d, true
}

// rangeParams reads the required start/end pair used by history endpoints.
func (h *Handler) rangeParams(c *gin.Context) (start, end time.Time, ok bool) {
	if c.Query("start") == "" || c.Query("end") == "" {
		apiError(c, http.StatusBadRequest, "start and end query params are required")
		return start, end, false
	}
	if start, ok = h.dateParam(c, "start"); !ok {
		return start, end, false
	}
	if end, ok = h.dateParam(c, "end"); !ok {
		return start, end, false
	}
	if start.After(end) {
		apiError(c, http.StatusBadRequest, "start must not be after end")
		return start, end, false
	}
	return start, end, true
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn) because
// hosted Postgres providers close idle connections after a few minutes.
func getDBPool(dbURL string) *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	log.Println("DB pool ready!")
	return pool
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/login", h.login)

	// Authenticated routes
	h.registerAPIRoutes(router.Group("/api", h.authMiddleware()))
}

// registerAPIRoutes adds the authenticated endpoints to api. Tests mount
// them behind a stub that sets user_id instead of authMiddleware.
func (h *Handler) registerAPIRoutes(api *gin.RouterGroup) {
	api.GET("/profile", h.getProfile)
	api.PATCH("/profile", h.patchProfile)

	api.GET("/diary", h.getDiary)
	api.POST("/diary/items", h.addConsumedFood)
	api.DELETE("/diary/items/:id", h.removeConsumedFood)
	api.DELETE("/diary/meals/:meal", h.clearMeal)

	api.GET("/training/week", h.getTrainingWeek)
	api.PUT("/training/days/:date", h.saveTrainingDay)
	api.PUT("/training/log/:id", h.updateTrainingEntry)
	api.GET("/training/streak", h.getStreak)

	api.GET("/foods", h.searchFoods)

	api.GET("/exercises", h.getExercises)
	api.GET("/exercises/:id", h.getExercise)

	api.GET("/workout-plan", h.getWorkoutPlan)
	api.POST("/workout-plan", h.addPlanItem)
	api.PUT("/workout-plan/:id", h.updatePlanItem)
	api.DELETE("/workout-plan/:id", h.deletePlanItem)

	api.GET("/recipes", h.getRecipes)
	api.GET("/recipes/:id", h.getRecipe)
	api.POST("/recipes/:id/favorite", h.toggleFavoriteRecipe)
	api.GET("/favorite-recipes", h.getFavoriteRecipes)

	api.GET("/personal-records", h.getPersonalRecords)
	api.PUT("/personal-records", h.upsertPersonalRecord)

	api.GET("/health/today", h.getHealthToday)
	api.GET("/health/history", h.getHealthHistory)

	api.POST("/chat", h.chat)
	api.GET("/chat/conversations", h.getConversations)
}
