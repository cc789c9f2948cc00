package healthmetrics

import (
	"testing"
	"time"
)

func TestComputeStreak(t *testing.T) {
	today := day(2024, 1, 10)

	cases := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty", nil, 0},
		{"three consecutive from today", []time.Time{day(2024, 1, 10), day(2024, 1, 9), day(2024, 1, 8)}, 3},
		{"gap after today", []time.Time{day(2024, 1, 10), day(2024, 1, 8)}, 1},
		{"stale", []time.Time{day(2024, 1, 5)}, 0},
		{"only today", []time.Time{day(2024, 1, 10)}, 1},
		{"only yesterday", []time.Time{day(2024, 1, 9)}, 1},
		{"anchored at yesterday", []time.Time{day(2024, 1, 9), day(2024, 1, 8), day(2024, 1, 7)}, 3},
		{"two days ago breaks", []time.Time{day(2024, 1, 8), day(2024, 1, 7)}, 0},
		{"stops at first gap", []time.Time{day(2024, 1, 10), day(2024, 1, 9), day(2024, 1, 7), day(2024, 1, 6)}, 2},
		{"future dates are not today", []time.Time{day(2024, 3, 1), day(2024, 2, 29)}, 0},
		// Duplicates are not collapsed; the repeat fails the previous-minus-one check.
		{"duplicate ends walk", []time.Time{day(2024, 1, 10), day(2024, 1, 10), day(2024, 1, 9)}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ComputeStreak(tc.dates, today); got != tc.want {
				t.Errorf("ComputeStreak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestComputeStreak_MonthBoundary(t *testing.T) {
	dates := []time.Time{day(2024, 3, 1), day(2024, 2, 29), day(2024, 2, 28)}
	if got := ComputeStreak(dates, day(2024, 3, 1)); got != 3 {
		t.Errorf("ComputeStreak = %d, want 3", got)
	}
}

// TestComputeStreak_TodayWithTime makes sure a wall-clock "today" is
// normalized before comparing.
func TestComputeStreak_TodayWithTime(t *testing.T) {
	now := time.Date(2024, 1, 10, 21, 45, 0, 0, time.UTC)
	dates := []time.Time{day(2024, 1, 9), day(2024, 1, 8)}
	if got := ComputeStreak(dates, now); got != 2 {
		t.Errorf("ComputeStreak = %d, want 2", got)
	}
}

func TestLongestStreak(t *testing.T) {
	dates := []time.Time{
		day(2024, 1, 10),
		day(2024, 1, 6), day(2024, 1, 5), day(2024, 1, 4), day(2024, 1, 3),
		day(2024, 1, 1),
	}
	if got := LongestStreak(dates); got != 4 {
		t.Errorf("LongestStreak = %d, want 4", got)
	}
	if got := LongestStreak(nil); got != 0 {
		t.Errorf("LongestStreak(nil) = %d, want 0", got)
	}
}

func TestStreaks(t *testing.T) {
	dates := []time.Time{day(2024, 1, 10), day(2024, 1, 9), day(2024, 1, 3), day(2024, 1, 2), day(2024, 1, 1)}
	got := Streaks(dates, day(2024, 1, 10))
	if got.Current != 2 || got.Longest != 3 {
		t.Errorf("Streaks = %+v, want current=2 longest=3", got)
	}

	// A broken current streak leaves longest intact.
	got = Streaks(dates, day(2024, 1, 20))
	if got.Current != 0 || got.Longest != 3 {
		t.Errorf("Streaks = %+v, want current=0 longest=3", got)
	}
}
