package healthmetrics

import "time"

// DailySummary is one user's totals for one calendar day. A missing row is
// treated as the zero value.
type DailySummary struct {
	UserID            int       `json:"user_id"`
	Date              time.Time `json:"-"`
	CaloriesConsumed  float64   `json:"calories_consumed"`
	TrainingCompleted bool      `json:"training_completed"`
}

// ConsumedFood is a single food logged against a meal.
type ConsumedFood struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	Date     time.Time `json:"-"`
	MealName string    `json:"meal_name"`
	FoodID   string    `json:"food_id"`
	FoodName string    `json:"food_name"`
	Kcal     float64   `json:"kcal"`
}

// TrainingLog is one exercise performed on a day. ProgressText carries the
// sets/reps/load in free form, see FormatProgress.
type TrainingLog struct {
	ID             int       `json:"id"`
	UserID         int       `json:"user_id"`
	DateRegistered time.Time `json:"-"`
	ActivityName   string    `json:"activity_name"`
	ProgressText   string    `json:"progress_text"`
}

// PersonalRecord is the best value a user has logged for an exercise.
type PersonalRecord struct {
	UserID         int       `json:"user_id"`
	ExerciseName   string    `json:"exercise_name"`
	Value          string    `json:"value"`
	DateRegistered time.Time `json:"-"`
}

// HealthScoreSample is the persisted overall score for one day.
type HealthScoreSample struct {
	UserID     int       `json:"user_id"`
	Date       time.Time `json:"-"`
	Percentage int       `json:"percentage"`
}

// TotalKcal sums the calories of foods.
func TotalKcal(foods []ConsumedFood) float64 {
	var total float64
	for _, f := range foods {
		total += f.Kcal
	}
	return total
}
