package healthmetrics

import (
	"errors"
	"math"
)

// ErrInvalidGoal is returned when a calorie goal is zero or negative.
var ErrInvalidGoal = errors.New("calorie goal must be greater than zero")

// NutritionScore rates calorie intake against a daily goal on a 0-100 scale.
//
// Below the goal the score rises linearly and reaches 100 exactly at the
// goal. Above it, every percent of overage costs one point, so eating twice
// the goal scores 0.
func NutritionScore(consumed, goal float64) (int, error) {
	if goal <= 0 || math.IsNaN(goal) {
		return 0, ErrInvalidGoal
	}
	if consumed < 0 || math.IsNaN(consumed) {
		consumed = 0
	}

	if consumed <= goal {
		return clampPercent(math.Round(consumed / goal * 100)), nil
	}

	penalty := math.Round((consumed - goal) / goal * 100)
	return clampPercent(100 - penalty), nil
}

// clampPercent clamps an already rounded value into [0, 100].
func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return int(v)
}
