package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"lg/fit-health-api/internal/healthmetrics"
)

const (
	foodColumns      = `id, name, kcal, protein, base_g`
	defaultFoodLimit = 50
	maxFoodLimit     = 200
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike quotes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// searchFoods returns catalog foods whose name contains q, case-insensitively.
// GET /api/foods?q=arroz&limit=50. An empty q lists the catalog.
func (h *Handler) searchFoods(c *gin.Context) {
	limit := defaultFoodLimit
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxFoodLimit {
			apiError(c, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		limit = n
	}
	q := strings.TrimSpace(c.Query("q"))

	rows, err := queryMany[foodRow](h.db, c,
		"SELECT "+foodColumns+` FROM foods
		 WHERE name ILIKE @pattern
		 ORDER BY name, id
		 LIMIT @limit`,
		pgx.NamedArgs{"pattern": "%" + escapeLike(q) + "%", "limit": limit})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to search foods")
		return
	}

	foods := make([]healthmetrics.Food, 0, len(rows))
	for _, r := range rows {
		foods = append(foods, r.toFood())
	}
	c.JSON(http.StatusOK, foods)
}

// lookupFood resolves a diary food_id against the catalog. ok is false when
// the id is not numeric or no catalog row has it.
func lookupFood(ctx context.Context, q querier, foodID string) (healthmetrics.Food, bool, error) {
	id, err := strconv.Atoi(strings.TrimSpace(foodID))
	if err != nil || id <= 0 {
		return healthmetrics.Food{}, false, nil
	}
	row, err := queryOne[foodRow](q, ctx,
		"SELECT "+foodColumns+" FROM foods WHERE id = @id",
		pgx.NamedArgs{"id": id})
	if errors.Is(err, pgx.ErrNoRows) {
		return healthmetrics.Food{}, false, nil
	}
	if err != nil {
		log.Printf("[lookupFood] id %d: %v", id, err)
		return healthmetrics.Food{}, false, err
	}
	return row.toFood(), true, nil
}

// isCatalogID reports whether foodID could name a catalog row.
func isCatalogID(foodID string) bool {
	id, err := strconv.Atoi(strings.TrimSpace(foodID))
	return err == nil && id > 0
}
