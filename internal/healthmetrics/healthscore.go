package healthmetrics

import "math"

// Weights splits the overall health score between nutrition and training.
// The two are expected to sum to 1; the sum is not enforced.
type Weights struct {
	Nutrition float64 `json:"nutrition" mapstructure:"nutrition"`
	Training  float64 `json:"training"  mapstructure:"training"`
}

// DefaultWeights is the 60/40 split used on the health screen.
var DefaultWeights = Weights{Nutrition: 0.6, Training: 0.4}

// TrainingScore is all-or-nothing: a completed workout is worth 100.
func TrainingScore(trainingCompleted bool) int {
	if trainingCompleted {
		return 100
	}
	return 0
}

// AggregateHealthScore combines a nutrition score with the training flag.
func AggregateHealthScore(nutritionScore int, trainingCompleted bool, w Weights) int {
	overall := float64(nutritionScore)*w.Nutrition + float64(TrainingScore(trainingCompleted))*w.Training
	return clampPercent(math.Round(overall))
}

// HealthScore is one day's breakdown as returned to clients.
type HealthScore struct {
	Nutrition int `json:"nutrition"`
	Training  int `json:"training"`
	Overall   int `json:"overall"`
}

// ScoreDay runs NutritionScore and AggregateHealthScore for one day's totals.
// A goal <= 0 surfaces ErrInvalidGoal untouched.
func ScoreDay(caloriesConsumed, calorieGoal float64, trainingCompleted bool, w Weights) (HealthScore, error) {
	nutrition, err := NutritionScore(caloriesConsumed, calorieGoal)
	if err != nil {
		return HealthScore{}, err
	}
	return HealthScore{
		Nutrition: nutrition,
		Training:  TrainingScore(trainingCompleted),
		Overall:   AggregateHealthScore(nutrition, trainingCompleted, w),
	}, nil
}

// AverageScore is the rounded mean Percentage of samples, 0 when empty.
func AverageScore(samples []HealthScoreSample) int {
	if len(samples) == 0 {
		return 0
	}
	total := 0
	for _, s := range samples {
		total += s.Percentage
	}
	return int(math.Round(float64(total) / float64(len(samples))))
}

/* ─── Score bands ─────────────────────────────────────────────────────── */

// ScoreBand labels a range of overall scores.
type ScoreBand struct {
	Min    int    `json:"min"`
	Max    int    `json:"max"`
	Label  string `json:"label"`
	Status string `json:"status"`
}

var scoreBands = []ScoreBand{
	{Min: 90, Max: 100, Label: "Excellent", Status: "excellent"},
	{Min: 70, Max: 89, Label: "Good", Status: "good"},
	{Min: 50, Max: 69, Label: "Regular", Status: "regular"},
	{Min: 30, Max: 49, Label: "Needs attention", Status: "attention"},
	{Min: 0, Max: 29, Label: "Critical", Status: "critical"},
}

// BandFor returns the band containing score. Out-of-range scores fall into
// the lowest band.
func BandFor(score int) ScoreBand {
	for _, b := range scoreBands {
		if score >= b.Min && score <= b.Max {
			return b
		}
	}
	return scoreBands[len(scoreBands)-1]
}
