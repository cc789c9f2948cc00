package healthmetrics

import (
	"errors"
	"testing"
)

func TestNutritionScore(t *testing.T) {
	cases := []struct {
		name     string
		consumed float64
		goal     float64
		want     int
	}{
		{"nothing eaten", 0, 2000, 0},
		{"half the goal", 1000, 2000, 50},
		{"exactly the goal", 2000, 2000, 100},
		{"rounds below goal", 1234, 2000, 62},
		{"ten percent over", 2200, 2000, 90},
		{"fifty percent over", 3000, 2000, 50},
		{"double the goal", 4000, 2000, 0},
		{"triple the goal floors at zero", 6000, 2000, 0},
		{"negative consumption treated as zero", -50, 2000, 0},
		{"fractional goal", 1.5, 3, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NutritionScore(tc.consumed, tc.goal)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("NutritionScore(%v, %v) = %d, want %d", tc.consumed, tc.goal, got, tc.want)
			}
		})
	}
}

// TestNutritionScore_Properties sweeps a range of goals for the fixed points
// of the curve: 0 at nothing, 100 at the goal, 0 at twice the goal.
func TestNutritionScore_Properties(t *testing.T) {
	for _, goal := range []float64{1, 150, 1800, 2000, 2750.5, 4000} {
		if got, _ := NutritionScore(goal, goal); got != 100 {
			t.Errorf("goal %v: score at goal = %d, want 100", goal, got)
		}
		if got, _ := NutritionScore(0, goal); got != 0 {
			t.Errorf("goal %v: score at zero = %d, want 0", goal, got)
		}
		if got, _ := NutritionScore(2*goal, goal); got != 0 {
			t.Errorf("goal %v: score at double = %d, want 0", goal, got)
		}
	}
}

func TestNutritionScore_InvalidGoal(t *testing.T) {
	for _, goal := range []float64{0, -1, -2000} {
		_, err := NutritionScore(100, goal)
		if !errors.Is(err, ErrInvalidGoal) {
			t.Errorf("goal %v: expected ErrInvalidGoal, got %v", goal, err)
		}
	}
}
