package healthmetrics

import (
	"errors"
	"testing"
)

func TestAggregateHealthScore(t *testing.T) {
	even := Weights{Nutrition: 0.5, Training: 0.5}

	cases := []struct {
		name      string
		nutrition int
		trained   bool
		weights   Weights
		want      int
	}{
		{"even split with training", 80, true, even, 90},
		{"default split without training", 100, false, DefaultWeights, 60},
		{"default split with training", 100, true, DefaultWeights, 100},
		{"nothing at all", 0, false, DefaultWeights, 0},
		{"training only", 0, true, DefaultWeights, 40},
		{"rounds half up", 75, false, Weights{Nutrition: 0.5, Training: 0.5}, 38},
		{"overweighted clamps", 100, true, Weights{Nutrition: 1, Training: 1}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := AggregateHealthScore(tc.nutrition, tc.trained, tc.weights); got != tc.want {
				t.Errorf("AggregateHealthScore = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestScoreDay(t *testing.T) {
	got, err := ScoreDay(1600, 2000, true, DefaultWeights)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := HealthScore{Nutrition: 80, Training: 100, Overall: 88}
	if got != want {
		t.Errorf("ScoreDay = %+v, want %+v", got, want)
	}

	if _, err := ScoreDay(1600, 0, true, DefaultWeights); !errors.Is(err, ErrInvalidGoal) {
		t.Errorf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestBandFor(t *testing.T) {
	cases := map[int]string{
		100: "excellent",
		90:  "excellent",
		89:  "good",
		70:  "good",
		55:  "regular",
		30:  "attention",
		29:  "critical",
		0:   "critical",
		-5:  "critical",
	}
	for score, want := range cases {
		if got := BandFor(score).Status; got != want {
			t.Errorf("BandFor(%d) = %q, want %q", score, got, want)
		}
	}
}

func TestAverageScore(t *testing.T) {
	tests := []struct {
		name    string
		samples []int
		want    int
	}{
		{"empty", nil, 0},
		{"single", []int{73}, 73},
		{"rounds half up", []int{70, 71}, 71},
		{"mixed", []int{85, 90, 70}, 82},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var samples []HealthScoreSample
			for _, p := range tt.samples {
				samples = append(samples, HealthScoreSample{Percentage: p})
			}
			if got := AverageScore(samples); got != tt.want {
				t.Errorf("AverageScore(%v) = %d, want %d", tt.samples, got, tt.want)
			}
		})
	}
}
