package main

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

const profileColumns = `user_id, name, sex, date_of_birth, height_cm, weight_kg, activity_level, daily_calorie_goal`

// loadProfile fetches the caller's profile. A missing row is not an error:
// the zero profile (no goal, no body data) is returned instead.
func (h *Handler) loadProfile(c *gin.Context, userID int) (profile, error) {
	p, err := queryOne[profile](h.db, c,
		"SELECT "+profileColumns+" FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	if errors.Is(err, pgx.ErrNoRows) {
		return profile{UserID: userID}, nil
	}
	return p, err
}

// getProfile returns the profile with BMI, BMR and TDEE filled in where the
// inputs allow.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := h.loadProfile(c, userID)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	populateBodyMetrics(&p, h.today())
	c.JSON(http.StatusOK, p)
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Pointer fields in the body distinguish "not provided"
// from zero. The row is created on first write.
func (h *Handler) patchProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	// An unknown level would silently disable TDEE for this user.
	if body.ActivityLevel != nil {
		if _, ok := activityMultipliers[*body.ActivityLevel]; !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, active, very_active")
			return
		}
	}

	// Build the column list dynamically; only fields the client sent are written.
	columns := []string{}
	args := pgx.NamedArgs{"userID": userID}
	set := func(column string, value any) {
		columns = append(columns, column)
		args[snakeToCamel(column)] = value
	}

	if body.Name != nil {
		set("name", strings.TrimSpace(*body.Name))
	}
	if body.Sex != nil {
		set("sex", *body.Sex)
	}
	if body.DateOfBirth != nil {
		set("date_of_birth", *body.DateOfBirth)
	}
	if body.HeightCM != nil {
		set("height_cm", *body.HeightCM)
	}
	if body.WeightKG != nil {
		set("weight_kg", *body.WeightKG)
	}
	if body.ActivityLevel != nil {
		set("activity_level", *body.ActivityLevel)
	}
	if body.DailyCalorieGoal != nil {
		set("daily_calorie_goal", *body.DailyCalorieGoal)
	}

	if len(columns) == 0 {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	query := buildProfileUpsert(columns)
	p, err := queryOne[profile](h.db, c, query, args)
	if err != nil {
		log.Printf("[patchProfile] upsert failed for user %d: %v", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to update profile")
		return
	}

	populateBodyMetrics(&p, h.today())
	c.JSON(http.StatusOK, p)
}

// buildProfileUpsert returns an INSERT ... ON CONFLICT DO UPDATE touching only
// columns. Named args follow the camelCase of each column.
func buildProfileUpsert(columns []string) string {
	placeholders := make([]string, len(columns))
	updates := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = "@" + snakeToCamel(col)
		updates[i] = col + " = EXCLUDED." + col
	}
	return "INSERT INTO profiles (user_id, " + strings.Join(columns, ", ") + ")" +
		" VALUES (@userID, " + strings.Join(placeholders, ", ") + ")" +
		" ON CONFLICT (user_id) DO UPDATE SET " + strings.Join(updates, ", ") + ", updated_at = now()" +
		" RETURNING " + profileColumns
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] == "" {
			continue
		}
		if parts[i] == "cm" || parts[i] == "kg" {
			parts[i] = strings.ToUpper(parts[i])
			continue
		}
		parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
	}
	return strings.Join(parts, "")
}
