package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"lg/fit-health-api/internal/healthmetrics"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format(healthmetrics.DateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+healthmetrics.DateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

// In returns the same calendar day at midnight in loc. pgx hands dates back
// as UTC midnights, which would land on the previous day west of Greenwich.
func (d DateOnly) In(loc *time.Location) time.Time {
	y, m, day := d.Time.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

/* ─── Users & profile ─────────────────────────────────────────────────── */

// user maps to the users table. AuthToken and Password are hidden from JSON responses.
type user struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// profile maps to the profiles table. Every body field is nullable: a fresh
// account only has a user_id.
type profile struct {
	UserID           int       `json:"user_id"            db:"user_id"`
	Name             *string   `json:"name"               db:"name"`
	Sex              *string   `json:"sex"                db:"sex"`
	DateOfBirth      *DateOnly `json:"date_of_birth"      db:"date_of_birth"`
	HeightCM         *float64  `json:"height_cm"          db:"height_cm"`
	WeightKG         *float64  `json:"weight_kg"          db:"weight_kg"`
	ActivityLevel    *string   `json:"activity_level"     db:"activity_level"`
	DailyCalorieGoal *float64  `json:"daily_calorie_goal" db:"daily_calorie_goal"`

	// Computed fields, populated server-side; db:"-" skips them during scanning.
	BMI          *float64 `json:"bmi,omitempty"          db:"-"`
	BMICategory  *string  `json:"bmi_category,omitempty" db:"-"`
	ComputedBMR  *int     `json:"bmr,omitempty"          db:"-"`
	ComputedTDEE *int     `json:"tdee,omitempty"         db:"-"`
}

// calorieGoal returns the profile's goal or fallback when unset or invalid.
func (p profile) calorieGoal(fallback float64) float64 {
	if p.DailyCalorieGoal == nil || *p.DailyCalorieGoal <= 0 {
		return fallback
	}
	return *p.DailyCalorieGoal
}

// patchProfileRequest is the request body for PATCH /api/profile. Only
// non-nil fields get written.
type patchProfileRequest struct {
	Name             *string  `json:"name"               binding:"omitempty,max=100"`
	Sex              *string  `json:"sex"                binding:"omitempty,oneof=male female"`
	DateOfBirth      *string  `json:"date_of_birth"      binding:"omitempty,datetime=2006-01-02"`
	HeightCM         *float64 `json:"height_cm"          binding:"omitempty,gt=0,lte=300"`
	WeightKG         *float64 `json:"weight_kg"          binding:"omitempty,gt=0,lte=700"`
	ActivityLevel    *string  `json:"activity_level"`
	DailyCalorieGoal *float64 `json:"daily_calorie_goal" binding:"omitempty,gt=0,lte=20000"`
}

/* ─── Store rows ──────────────────────────────────────────────────────── */

// Rows mirror the tables column for column. Nullable columns are pointers and
// get normalized by the to* methods before any scoring code sees them.

type dailySummaryRow struct {
	UserID            int      `db:"user_id"`
	Date              DateOnly `db:"date"`
	CaloriesConsumed  *float64 `db:"calories_consumed"`
	TrainingCompleted *bool    `db:"training_completed"`
}

func (r dailySummaryRow) toDailySummary(loc *time.Location) healthmetrics.DailySummary {
	s := healthmetrics.DailySummary{UserID: r.UserID, Date: r.Date.In(loc)}
	if r.CaloriesConsumed != nil && *r.CaloriesConsumed > 0 {
		s.CaloriesConsumed = *r.CaloriesConsumed
	}
	if r.TrainingCompleted != nil {
		s.TrainingCompleted = *r.TrainingCompleted
	}
	return s
}

type consumedFoodRow struct {
	ID        int        `db:"id"`
	UserID    int        `db:"user_id"`
	Date      DateOnly   `db:"date"`
	MealName  *string    `db:"meal_name"`
	FoodID    *string    `db:"food_id"`
	FoodName  *string    `db:"food_name"`
	Kcal      *float64   `db:"kcal"`
	CreatedAt *time.Time `db:"created_at"`
}

func (r consumedFoodRow) toConsumedFood(loc *time.Location) healthmetrics.ConsumedFood {
	f := healthmetrics.ConsumedFood{
		ID:       r.ID,
		UserID:   r.UserID,
		Date:     r.Date.In(loc),
		MealName: deref(r.MealName),
		FoodID:   deref(r.FoodID),
		FoodName: deref(r.FoodName),
	}
	if r.Kcal != nil && *r.Kcal > 0 {
		f.Kcal = *r.Kcal
	}
	return f
}

type trainingLogRow struct {
	ID             int        `db:"id"`
	UserID         int        `db:"user_id"`
	DateRegistered DateOnly   `db:"date_registered"`
	ActivityName   *string    `db:"activity_name"`
	ProgressText   *string    `db:"progress_text"`
	CreatedAt      *time.Time `db:"created_at"`
}

func (r trainingLogRow) toTrainingLog(loc *time.Location) healthmetrics.TrainingLog {
	return healthmetrics.TrainingLog{
		ID:             r.ID,
		UserID:         r.UserID,
		DateRegistered: r.DateRegistered.In(loc),
		ActivityName:   deref(r.ActivityName),
		ProgressText:   deref(r.ProgressText),
	}
}

// personalRecordRow doubles as the JSON shape for GET /api/personal-records.
type personalRecordRow struct {
	UserID         int       `json:"user_id"         db:"user_id"`
	ExerciseName   string    `json:"exercise_name"   db:"exercise_name"`
	Value          *string   `json:"value"           db:"value"`
	DateRegistered *DateOnly `json:"date_registered" db:"date_registered"`
}

func (r personalRecordRow) toPersonalRecord(loc *time.Location) healthmetrics.PersonalRecord {
	pr := healthmetrics.PersonalRecord{UserID: r.UserID, ExerciseName: r.ExerciseName, Value: deref(r.Value)}
	if r.DateRegistered != nil {
		pr.DateRegistered = r.DateRegistered.In(loc)
	}
	return pr
}

// healthScoreRow is one persisted HealthScoreSample plus its breakdown.
type healthScoreRow struct {
	UserID     int      `json:"user_id"    db:"user_id"`
	Date       DateOnly `json:"date"       db:"date"`
	Percentage int      `json:"percentage" db:"percentage"`
	Nutrition  int      `json:"nutrition"  db:"nutrition"`
	Training   int      `json:"training"   db:"training"`
}

func (r healthScoreRow) toSample(loc *time.Location) healthmetrics.HealthScoreSample {
	return healthmetrics.HealthScoreSample{UserID: r.UserID, Date: r.Date.In(loc), Percentage: r.Percentage}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

/* ─── Diary ───────────────────────────────────────────────────────────── */

// addConsumedFoodRequest is the request body for POST /api/diary/items.
type addConsumedFoodRequest struct {
	Date     string  `json:"date"      binding:"omitempty,datetime=2006-01-02"`
	MealName string  `json:"meal_name" binding:"required,mealname"`
	FoodID   string  `json:"food_id"   binding:"required,max=64"`
	FoodName string  `json:"food_name" binding:"max=200"`
	Kcal     float64 `json:"kcal"      binding:"gte=0,lte=100000"`
	Grams    float64 `json:"grams"     binding:"gte=0,lte=10000"` // catalog foods only
}

// foodItem is one food as rendered inside a meal bucket.
type foodItem struct {
	ID       int     `json:"id"`
	FoodID   string  `json:"food_id"`
	FoodName string  `json:"food_name"`
	Kcal     float64 `json:"kcal"`
}

type mealBucket struct {
	Meal  healthmetrics.MealName `json:"meal"`
	Kcal  float64                `json:"kcal"`
	Foods []foodItem             `json:"foods"`
}

// diaryResponse is the response shape for GET /api/diary.
type diaryResponse struct {
	Date              string       `json:"date"`
	CalorieGoal       float64      `json:"calorie_goal"`
	CaloriesConsumed  float64      `json:"calories_consumed"`
	TrainingCompleted bool         `json:"training_completed"`
	Meals             []mealBucket `json:"meals"`
}

/* ─── Catalogs ────────────────────────────────────────────────────────── */

type foodRow struct {
	ID        int     `db:"id"`
	Name      string  `db:"name"`
	Kcal      float64 `db:"kcal"`
	Protein   float64 `db:"protein"`
	BaseGrams float64 `db:"base_g"`
}

func (r foodRow) toFood() healthmetrics.Food {
	return healthmetrics.Food{ID: r.ID, Name: r.Name, Kcal: r.Kcal, Protein: r.Protein, BaseGrams: r.BaseGrams}
}

type exerciseRow struct {
	ID           int     `db:"id"`
	Name         string  `db:"name"`
	MuscleGroup  *string `db:"muscle_group"`
	Description  *string `db:"description"`
	Instructions *string `db:"instructions"`
	ImageURL     *string `db:"image_url"`
}

func (r exerciseRow) toExercise() healthmetrics.Exercise {
	return healthmetrics.Exercise{
		ID:           r.ID,
		Name:         r.Name,
		MuscleGroup:  deref(r.MuscleGroup),
		Description:  deref(r.Description),
		Instructions: deref(r.Instructions),
		ImageURL:     deref(r.ImageURL),
	}
}

// planItemRow is a workout_plan row joined with its exercise.
type planItemRow struct {
	ID           int     `db:"id"`
	UserID       int     `db:"user_id"`
	ExerciseID   int     `db:"exercise_id"`
	Weekday      int     `db:"weekday"`
	Sets         int     `db:"sets"`
	Reps         *string `db:"reps"`
	Notes        *string `db:"notes"`
	ExerciseName string  `db:"exercise_name"`
	MuscleGroup  *string `db:"muscle_group"`
	Description  *string `db:"description"`
	Instructions *string `db:"instructions"`
	ImageURL     *string `db:"image_url"`
}

func (r planItemRow) toPlanItem() healthmetrics.PlanItem {
	return healthmetrics.PlanItem{
		ID:      r.ID,
		UserID:  r.UserID,
		Weekday: time.Weekday(r.Weekday),
		Sets:    r.Sets,
		Reps:    deref(r.Reps),
		Notes:   deref(r.Notes),
		Exercise: exerciseRow{
			ID:           r.ExerciseID,
			Name:         r.ExerciseName,
			MuscleGroup:  r.MuscleGroup,
			Description:  r.Description,
			Instructions: r.Instructions,
			ImageURL:     r.ImageURL,
		}.toExercise(),
	}
}

// planItemRequest is the body for POST /api/workout-plan and
// PUT /api/workout-plan/:id.
type planItemRequest struct {
	ExerciseID int    `json:"exercise_id" binding:"required,gt=0"`
	Weekday    *int   `json:"weekday"     binding:"required,gte=0,lte=6"`
	Sets       int    `json:"sets"        binding:"gte=0,lte=100"`
	Reps       string `json:"reps"        binding:"max=40,progressreps"`
	Notes      string `json:"notes"       binding:"max=500"`
}

// recipe maps to the recipes table. Favorite is computed per user.
type recipe struct {
	ID            int    `json:"id" db:"id"`
	Title         string `json:"title" db:"title"`
	Category      string `json:"category" db:"category"`
	Ingredients   string `json:"ingredients" db:"ingredients"`
	Preparation   string `json:"preparation" db:"preparation"`
	ImageURL      string `json:"image_url" db:"image_url"`
	TitlePT       string `json:"title_pt" db:"title_pt"`
	IngredientsPT string `json:"ingredients_pt" db:"ingredients_pt"`
	PreparationPT string `json:"preparation_pt" db:"preparation_pt"`
	Favorite      bool   `json:"favorite" db:"favorite"`
}

/* ─── Training ────────────────────────────────────────────────────────── */

// exerciseInput is one exercise in a PUT /api/training/days/:date body.
type exerciseInput struct {
	ActivityName string `json:"activity_name" binding:"max=200"`
	Sets         string `json:"sets"          binding:"max=20,progresssets"`
	Reps         string `json:"reps"          binding:"max=20,progressreps"`
	Load         string `json:"load"          binding:"max=40"`
}

type saveTrainingDayRequest struct {
	Exercises []exerciseInput `json:"exercises" binding:"dive"`
}

type trainingEntry struct {
	ID           int                    `json:"id"`
	ActivityName string                 `json:"activity_name"`
	ProgressText string                 `json:"progress_text"`
	Progress     healthmetrics.Progress `json:"progress"`
}

// trainingDay is one day in the GET /api/training/week response.
type trainingDay struct {
	Date    string                  `json:"date"`
	Weekday int                     `json:"weekday"`
	Name    string                  `json:"name"`
	Status  healthmetrics.DayStatus `json:"status"`
	Entries []trainingEntry         `json:"entries"`
}

func newTrainingEntry(l healthmetrics.TrainingLog) trainingEntry {
	return trainingEntry{
		ID:           l.ID,
		ActivityName: l.ActivityName,
		ProgressText: l.ProgressText,
		Progress:     healthmetrics.ParseProgress(l.ProgressText),
	}
}

/* ─── Health ──────────────────────────────────────────────────────────── */

// healthTodayResponse is the response shape for GET /api/health/today.
type healthTodayResponse struct {
	Date             string                  `json:"date"`
	CalorieGoal      float64                 `json:"calorie_goal"`
	CaloriesConsumed float64                 `json:"calories_consumed"`
	Nutrition        int                     `json:"nutrition"`
	Training         int                     `json:"training"`
	Overall          int                     `json:"overall"`
	Weights          healthmetrics.Weights   `json:"weights"`
	Band             healthmetrics.ScoreBand `json:"band"`
}
