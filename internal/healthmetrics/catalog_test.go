package healthmetrics

import (
	"math"
	"testing"
	"time"
)

func TestFoodKcalFor(t *testing.T) {
	rice := Food{Name: "Arroz, integral, cozido", Kcal: 112, BaseGrams: 100}
	cases := []struct {
		name  string
		food  Food
		grams float64
		want  float64
	}{
		{"one portion by default", rice, 0, 112},
		{"scaled", rice, 150, 168},
		{"missing base means 100g", Food{Kcal: 300}, 50, 150},
		{"negative kcal clamps", Food{Kcal: -10, BaseGrams: 100}, 100, 0},
	}
	for _, tc := range cases {
		if got := tc.food.KcalFor(tc.grams); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: KcalFor(%v) = %v, want %v", tc.name, tc.grams, got, tc.want)
		}
	}
}

func TestGroupExercisesByMuscle(t *testing.T) {
	exercises := []Exercise{
		{ID: 1, Name: "Supino", MuscleGroup: "Peito"},
		{ID: 2, Name: "Agachamento", MuscleGroup: "Pernas"},
		{ID: 3, Name: "Crucifixo", MuscleGroup: "Peito"},
		{ID: 4, Name: "Burpee"},
	}

	got := GroupExercisesByMuscle(exercises)
	wantTitles := []string{OtherMuscleGroup, "Peito", "Pernas"}
	if len(got) != len(wantTitles) {
		t.Fatalf("expected %d sections, got %d: %+v", len(wantTitles), len(got), got)
	}
	for i, title := range wantTitles {
		if got[i].Title != title {
			t.Errorf("section %d = %q, want %q", i, got[i].Title, title)
		}
	}
	if chest := got[1].Exercises; len(chest) != 2 || chest[0].ID != 1 || chest[1].ID != 3 {
		t.Errorf("chest section should keep input order, got %+v", chest)
	}
	if empty := GroupExercisesByMuscle(nil); empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestGroupPlanByWeekday(t *testing.T) {
	items := []PlanItem{
		{ID: 1, Weekday: time.Wednesday},
		{ID: 2, Weekday: time.Monday},
		{ID: 3, Weekday: time.Wednesday},
		{ID: 4, Weekday: time.Weekday(9)},
		{ID: 5, Weekday: time.Sunday},
	}

	got := GroupPlanByWeekday(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d: %+v", len(got), got)
	}
	want := []time.Weekday{time.Sunday, time.Monday, time.Wednesday}
	for i, wd := range want {
		if got[i].Weekday != wd || got[i].Name != wd.String() {
			t.Errorf("day %d = %v/%s, want %v", i, got[i].Weekday, got[i].Name, wd)
		}
	}
	if wed := got[2].Items; len(wed) != 2 || wed[0].ID != 1 || wed[1].ID != 3 {
		t.Errorf("wednesday items = %+v, want ids 1 and 3", wed)
	}
	if empty := GroupPlanByWeekday(nil); empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}
