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

const consumedFoodColumns = `id, user_id, date, meal_name, food_id, food_name, kcal, created_at`

const errFoodNameRequired = "food_name is required for foods outside the catalog"

var errUnknownFood = errors.New("food not in catalog")

// getDiary returns the day's foods grouped into the four meals, with per-meal
// and daily totals.
// GET /api/diary?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDiary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	dateStr := healthmetrics.LocalDateString(date)

	rows, err := queryMany[consumedFoodRow](h.db, c,
		"SELECT "+consumedFoodColumns+` FROM consumed_foods
		 WHERE user_id = @userID AND date = @date
		 ORDER BY created_at, id`,
		pgx.NamedArgs{"userID": userID, "date": dateStr})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch diary")
		return
	}

	p, err := h.loadProfile(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	summary, err := h.loadDailySummary(c, userID, date)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch daily summary")
		return
	}

	foods := make([]healthmetrics.ConsumedFood, 0, len(rows))
	for _, r := range rows {
		foods = append(foods, r.toConsumedFood(h.loc))
	}

	c.JSON(http.StatusOK, buildDiary(dateStr, foods, summary, p.calorieGoal(h.cfg.DefaultCalorieGoal)))
}

// buildDiary shapes grouped foods into the response, meals in display order.
func buildDiary(date string, foods []healthmetrics.ConsumedFood, summary healthmetrics.DailySummary, goal float64) diaryResponse {
	grouped := healthmetrics.GroupFoodsByMeal(foods)

	resp := diaryResponse{
		Date:              date,
		CalorieGoal:       goal,
		CaloriesConsumed:  summary.CaloriesConsumed,
		TrainingCompleted: summary.TrainingCompleted,
		Meals:             make([]mealBucket, 0, len(healthmetrics.Meals)),
	}
	for _, meal := range healthmetrics.Meals {
		bucket := mealBucket{Meal: meal, Foods: make([]foodItem, 0, len(grouped[meal]))}
		for _, f := range grouped[meal] {
			bucket.Foods = append(bucket.Foods, foodItem{ID: f.ID, FoodID: f.FoodID, FoodName: f.FoodName, Kcal: f.Kcal})
		}
		bucket.Kcal = healthmetrics.TotalKcal(grouped[meal])
		resp.Meals = append(resp.Meals, bucket)
	}
	return resp
}

// addConsumedFood logs a food against a meal and refreshes the day's calorie
// total in daily_summary. When food_id names a catalog food, its name and
// kcal (scaled by grams) replace the ones in the body.
// POST /api/diary/items. Defaults date to today if omitted.
func (h *Handler) addConsumedFood(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body addConsumedFoodRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}
	meal, _ := healthmetrics.ParseMealName(body.MealName) // validated by binding
	if body.Date == "" {
		body.Date = healthmetrics.LocalDateString(h.today())
	}
	body.FoodName = strings.TrimSpace(body.FoodName)
	if body.FoodName == "" && !isCatalogID(body.FoodID) {
		apiError(c, http.StatusBadRequest, errFoodNameRequired)
		return
	}

	var row consumedFoodRow
	err := pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		food, ok, err := lookupFood(c, tx, body.FoodID)
		if err != nil {
			return err
		}
		if ok {
			body.FoodName = food.Name
			body.Kcal = food.KcalFor(body.Grams)
		} else if body.FoodName == "" {
			return errUnknownFood
		}

		row, err = queryOne[consumedFoodRow](tx, c,
			`INSERT INTO consumed_foods (user_id, date, meal_name, food_id, food_name, kcal)
			 VALUES (@userID, @date, @mealName, @foodID, @foodName, @kcal)
			 RETURNING `+consumedFoodColumns,
			pgx.NamedArgs{
				"userID": userID, "date": body.Date, "mealName": string(meal),
				"foodID": body.FoodID, "foodName": body.FoodName, "kcal": body.Kcal,
			})
		if err != nil {
			return err
		}
		return refreshCaloriesConsumed(c, tx, userID, body.Date)
	})
	if errors.Is(err, errUnknownFood) {
		apiError(c, http.StatusBadRequest, errFoodNameRequired)
		return
	}
	if err != nil {
		log.Printf("[addConsumedFood] user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to add food")
		return
	}

	c.JSON(http.StatusCreated, row.toConsumedFood(h.loc))
}

// removeConsumedFood deletes one logged food. Returns 204 on success.
// DELETE /api/diary/items/:id.
func (h *Handler) removeConsumedFood(c *gin.Context) {
	userID := c.GetInt("user_id")
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	err = pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		var date DateOnly
		err := tx.QueryRow(c,
			"DELETE FROM consumed_foods WHERE id = @id AND user_id = @userID RETURNING date",
			pgx.NamedArgs{"id": id, "userID": userID}).Scan(&date)
		if err != nil {
			return err
		}
		return refreshCaloriesConsumed(c, tx, userID, healthmetrics.LocalDateString(date.Time))
	})
	if errors.Is(err, pgx.ErrNoRows) {
		apiError(c, http.StatusNotFound, "item not found")
		return
	}
	if err != nil {
		log.Printf("[removeConsumedFood] user %d id %d: %v", userID, id, err)
		apiError(c, http.StatusInternalServerError, "failed to delete item")
		return
	}

	c.Status(http.StatusNoContent)
}

// clearMeal deletes every food logged under one meal on a day, matching any
// stored spelling of the meal.
// DELETE /api/diary/meals/:meal?date=YYYY-MM-DD (defaults to today).
func (h *Handler) clearMeal(c *gin.Context) {
	userID := c.GetInt("user_id")
	meal, ok := healthmetrics.ParseMealName(c.Param("meal"))
	if !ok {
		apiError(c, http.StatusBadRequest, "meal must be one of: Breakfast, Lunch, Dinner, Snacks")
		return
	}
	date, ok := h.dateParam(c, "date")
	if !ok {
		return
	}
	dateStr := healthmetrics.LocalDateString(date)

	var removed int64
	err := pgx.BeginFunc(c, h.db, func(tx pgx.Tx) error {
		n, err := clearMealTx(c, tx, userID, dateStr, meal)
		if err != nil {
			return err
		}
		removed = n
		return refreshCaloriesConsumed(c, tx, userID, dateStr)
	})
	if err != nil {
		log.Printf("[clearMeal] user %d %s %s: %v", userID, meal, dateStr, err)
		apiError(c, http.StatusInternalServerError, "failed to clear meal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal": meal, "date": dateStr, "removed": removed})
}

func clearMealTx(ctx context.Context, tx pgx.Tx, userID int, date string, meal healthmetrics.MealName) (int64, error) {
	tag, err := tx.Exec(ctx,
		`DELETE FROM consumed_foods
		 WHERE user_id = @userID AND date = @date AND lower(meal_name) = ANY(@labels)`,
		pgx.NamedArgs{"userID": userID, "date": date, "labels": healthmetrics.MealLabels(meal)})
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
