package main

import (
	"testing"
	"time"

	"lg/fit-health-api/internal/healthmetrics"
)

func TestBuildTrainingWeek(t *testing.T) {
	weekStart := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) // Sunday
	today := time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC)     // Wednesday
	logs := []healthmetrics.TrainingLog{
		{ID: 1, DateRegistered: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), ActivityName: "Squat", ProgressText: "3x10 @ 60kg"},
		{ID: 2, DateRegistered: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), ActivityName: "Plank", ProgressText: "3x60s"},
		{ID: 3, DateRegistered: time.Date(2026, 3, 22, 0, 0, 0, 0, time.UTC), ActivityName: "Run"}, // next week
	}

	days := buildTrainingWeek(logs, weekStart, today)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	wantStatus := []healthmetrics.DayStatus{
		healthmetrics.StatusMissed,
		healthmetrics.StatusConcluded,
		healthmetrics.StatusMissed,
		healthmetrics.StatusPending,
		healthmetrics.StatusPending,
		healthmetrics.StatusPending,
		healthmetrics.StatusPending,
	}
	for i, d := range days {
		if d.Status != wantStatus[i] {
			t.Errorf("%s: status %s, want %s", d.Date, d.Status, wantStatus[i])
		}
		if d.Entries == nil {
			t.Errorf("%s: entries should be an empty slice, not nil", d.Date)
		}
	}

	if days[0].Date != "2026-03-15" || days[0].Name != "Sunday" || days[0].Weekday != 0 {
		t.Errorf("unexpected first day %+v", days[0])
	}
	if days[6].Date != "2026-03-21" || days[6].Name != "Saturday" {
		t.Errorf("unexpected last day %+v", days[6])
	}

	monday := days[1]
	if len(monday.Entries) != 2 {
		t.Fatalf("expected 2 entries on Monday, got %d", len(monday.Entries))
	}
	squat := monday.Entries[0]
	if squat.Progress.Sets != "3" || squat.Progress.Reps != "10" || squat.Progress.Load != "60kg" {
		t.Errorf("unexpected parsed progress %+v", squat.Progress)
	}
}

func TestValidExercises(t *testing.T) {
	in := []exerciseInput{
		{ActivityName: "  Bench press ", Sets: " 4", Reps: "8 ", Load: " 50kg "},
		{ActivityName: "   ", Sets: "3", Reps: "10"},
		{ActivityName: ""},
		{ActivityName: "Run", Load: "5km"},
	}

	got := validExercises(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 exercises, got %d: %+v", len(got), got)
	}
	want := exerciseInput{ActivityName: "Bench press", Sets: "4", Reps: "8", Load: "50kg"}
	if got[0] != want {
		t.Errorf("got %+v, want %+v", got[0], want)
	}
	if got[1].ActivityName != "Run" {
		t.Errorf("expected Run second, got %+v", got[1])
	}
}
