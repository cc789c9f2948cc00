package healthmetrics

import (
	"sort"
	"testing"
	"time"
)

func TestParseMealName(t *testing.T) {
	cases := []struct {
		in   string
		want MealName
		ok   bool
	}{
		{"Breakfast", Breakfast, true},
		{"Café da manhã", Breakfast, true},
		{"Café da Manhã", Breakfast, true},
		{"almoço", Lunch, true},
		{"Jantar", Dinner, true},
		{"Lanche", Snacks, true},
		{"Lanches", Snacks, true},
		{" snack ", Snacks, true},
		{"Ceia", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseMealName(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseMealName(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestGroupFoodsByMeal(t *testing.T) {
	records := []ConsumedFood{
		{ID: 1, MealName: "Café da Manhã", FoodName: "Oats", Kcal: 385},
		{ID: 2, MealName: "Lanche", FoodName: "Banana", Kcal: 92},
		{ID: 3, MealName: "Lanches", FoodName: "Crackers", Kcal: 432},
		{ID: 4, MealName: "Jantar", FoodName: "Rice", Kcal: 128},
		{ID: 5, MealName: "Midnight feast", FoodName: "Cake", Kcal: 500},
	}

	grouped := GroupFoodsByMeal(records)

	if len(grouped) != 4 {
		t.Fatalf("expected 4 meal buckets, got %d", len(grouped))
	}
	if n := len(grouped[Breakfast]); n != 1 {
		t.Errorf("breakfast has %d items, want 1", n)
	}
	if n := len(grouped[Lunch]); n != 0 {
		t.Errorf("lunch has %d items, want 0", n)
	}
	if n := len(grouped[Snacks]); n != 2 {
		t.Errorf("snacks has %d items, want 2", n)
	}
	if n := len(grouped[Dinner]); n != 1 {
		t.Errorf("dinner has %d items, want 1", n)
	}

	total := 0
	for _, foods := range grouped {
		total += len(foods)
	}
	if total != 4 {
		t.Errorf("expected the unknown meal to be dropped, kept %d of 5", total)
	}
}

// TestGroupFoodsByMeal_Regroup flattens the grouped output and groups it
// again; the buckets must come back the same.
func TestGroupFoodsByMeal_Regroup(t *testing.T) {
	records := []ConsumedFood{
		{ID: 1, MealName: "Breakfast"},
		{ID: 2, MealName: "Lunch"},
		{ID: 3, MealName: "lanche"},
		{ID: 4, MealName: "Dinner"},
		{ID: 5, MealName: "Lunch"},
		{ID: 6, MealName: "unknown"},
	}
	first := GroupFoodsByMeal(records)

	var flat []ConsumedFood
	for _, m := range Meals {
		flat = append(flat, first[m]...)
	}
	second := GroupFoodsByMeal(flat)

	for _, m := range Meals {
		if a, b := ids(first[m]), ids(second[m]); !equalInts(a, b) {
			t.Errorf("meal %s: first=%v second=%v", m, a, b)
		}
	}
}

func ids(foods []ConsumedFood) []int {
	out := make([]int, 0, len(foods))
	for _, f := range foods {
		out = append(out, f.ID)
	}
	sort.Ints(out)
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTotalKcal(t *testing.T) {
	foods := []ConsumedFood{{Kcal: 112}, {Kcal: 92.5}, {Kcal: 0}}
	if got := TotalKcal(foods); got != 204.5 {
		t.Errorf("TotalKcal = %v, want 204.5", got)
	}
}

/* ─── Training week ───────────────────────────────────────────────────── */

func TestWeekStart(t *testing.T) {
	cases := []struct {
		today time.Time
		want  time.Time
	}{
		{day(2024, 1, 10), day(2024, 1, 7)},                              // Wednesday
		{day(2024, 1, 7), day(2024, 1, 7)},                               // Sunday itself
		{day(2024, 1, 13), day(2024, 1, 7)},                              // Saturday
		{day(2024, 3, 2), day(2024, 2, 25)},                              // crosses month
		{time.Date(2024, 1, 10, 18, 0, 0, 0, time.UTC), day(2024, 1, 7)}, // time of day dropped
	}
	for _, tc := range cases {
		if got := WeekStart(tc.today); !got.Equal(tc.want) {
			t.Errorf("WeekStart(%s) = %s, want %s", LocalDateString(tc.today), LocalDateString(got), LocalDateString(tc.want))
		}
	}
}

func TestGroupTrainingByWeekday_AlwaysSevenBuckets(t *testing.T) {
	weekStart := day(2024, 1, 7)
	inputs := [][]TrainingLog{
		nil,
		{{ID: 1, DateRegistered: day(2024, 1, 8)}},
		{
			{ID: 1, DateRegistered: day(2024, 1, 7)},
			{ID: 2, DateRegistered: day(2024, 1, 7)},
			{ID: 3, DateRegistered: day(2024, 1, 13)},
			{ID: 4, DateRegistered: day(2024, 1, 14)}, // next week
			{ID: 5, DateRegistered: day(2024, 1, 6)},  // previous week
		},
	}
	for _, records := range inputs {
		buckets := GroupTrainingByWeekday(records, weekStart)
		if len(buckets) != 7 {
			t.Fatalf("expected 7 buckets, got %d", len(buckets))
		}
		for i, b := range buckets {
			if b == nil {
				t.Errorf("bucket %d is nil, want empty slice", i)
			}
		}
	}

	buckets := GroupTrainingByWeekday(inputs[2], weekStart)
	if len(buckets[0]) != 2 || len(buckets[6]) != 1 {
		t.Errorf("unexpected bucket sizes: sun=%d sat=%d", len(buckets[0]), len(buckets[6]))
	}
	for i := 1; i < 6; i++ {
		if len(buckets[i]) != 0 {
			t.Errorf("bucket %d should be empty, has %d", i, len(buckets[i]))
		}
	}
}

func TestBuildTrainingWeek_Statuses(t *testing.T) {
	today := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC) // Wednesday
	records := []TrainingLog{
		{ID: 1, ActivityName: "Squat", DateRegistered: day(2024, 1, 8)},
		{ID: 2, ActivityName: "Run", DateRegistered: day(2024, 1, 12)},
	}

	week := BuildTrainingWeek(records, WeekStart(today), today)

	want := [7]DayStatus{
		StatusMissed,    // Sun 7
		StatusConcluded, // Mon 8
		StatusMissed,    // Tue 9
		StatusPending,   // Wed 10, today
		StatusPending,   // Thu 11
		StatusConcluded, // Fri 12, logged ahead
		StatusPending,   // Sat 13
	}
	for i, d := range week {
		if d.Status != want[i] {
			t.Errorf("day %d (%s): status %q, want %q", i, LocalDateString(d.Date), d.Status, want[i])
		}
		if d.Weekday != time.Weekday(i) {
			t.Errorf("day %d: weekday %s, want %s", i, d.Weekday, time.Weekday(i))
		}
	}
}

func TestStatusFor(t *testing.T) {
	today := day(2024, 1, 10)
	if got := StatusFor(day(2024, 1, 9), today, false); got != StatusMissed {
		t.Errorf("past empty day = %q, want missed", got)
	}
	if got := StatusFor(today, today, false); got != StatusPending {
		t.Errorf("today empty = %q, want pending", got)
	}
	if got := StatusFor(day(2024, 1, 9), today, true); got != StatusConcluded {
		t.Errorf("past with entries = %q, want concluded", got)
	}
}

func TestMealLabels(t *testing.T) {
	got := MealLabels(Snacks)
	want := []string{"lanche", "lanches", "snack", "snacks"}
	if len(got) != len(want) {
		t.Fatalf("MealLabels(Snacks) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MealLabels(Snacks)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, m := range Meals {
		for _, label := range MealLabels(m) {
			if back, ok := ParseMealName(label); !ok || back != m {
				t.Errorf("label %q does not resolve back to %s", label, m)
			}
		}
	}
}
