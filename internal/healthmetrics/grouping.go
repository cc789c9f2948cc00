package healthmetrics

import (
	"sort"
	"strings"
	"time"
)

// MealName is one of the four fixed diary meals.
type MealName string

const (
	Breakfast MealName = "Breakfast"
	Lunch     MealName = "Lunch"
	Dinner    MealName = "Dinner"
	Snacks    MealName = "Snacks"
)

// Meals lists the meal buckets in display order.
var Meals = []MealName{Breakfast, Lunch, Dinner, Snacks}

// mealAliases maps stored and display spellings to a MealName. Keys are
// lower-cased. Older rows were written with the Portuguese labels, and the
// snack bucket was stored both singular and plural.
var mealAliases = map[string]MealName{
	"breakfast":     Breakfast,
	"café da manhã": Breakfast,
	"cafe da manha": Breakfast,
	"lunch":         Lunch,
	"almoço":        Lunch,
	"almoco":        Lunch,
	"dinner":        Dinner,
	"jantar":        Dinner,
	"snack":         Snacks,
	"snacks":        Snacks,
	"lanche":        Snacks,
	"lanches":       Snacks,
}

// ParseMealName resolves a stored or display meal label. ok is false for
// anything outside the fixed set.
func ParseMealName(s string) (MealName, bool) {
	m, ok := mealAliases[strings.ToLower(strings.TrimSpace(s))]
	return m, ok
}

// MealLabels returns every lower-cased label that resolves to m, sorted. Used
// to match rows stored under older spellings.
func MealLabels(m MealName) []string {
	var labels []string
	for label, meal := range mealAliases {
		if meal == m {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)
	return labels
}

// GroupFoodsByMeal buckets foods by meal. Every meal has an entry, possibly
// empty. Records with an unrecognized meal name are left out.
func GroupFoodsByMeal(records []ConsumedFood) map[MealName][]ConsumedFood {
	grouped := make(map[MealName][]ConsumedFood, len(Meals))
	for _, m := range Meals {
		grouped[m] = []ConsumedFood{}
	}
	for _, r := range records {
		meal, ok := ParseMealName(r.MealName)
		if !ok {
			continue
		}
		grouped[meal] = append(grouped[meal], r)
	}
	return grouped
}

/* ─── Training week ───────────────────────────────────────────────────── */

// DayStatus is the marker drawn on each day of the training week.
type DayStatus string

const (
	StatusConcluded DayStatus = "concluded"
	StatusMissed    DayStatus = "missed"
	StatusPending   DayStatus = "pending"
)

// WeekStart returns midnight of the most recent Sunday at or before today.
func WeekStart(today time.Time) time.Time {
	today = Midnight(today)
	return AddDays(today, -int(today.Weekday()))
}

// GroupTrainingByWeekday places records into seven day buckets, where bucket
// i is weekStart+i days. Records outside that week are ignored.
func GroupTrainingByWeekday(records []TrainingLog, weekStart time.Time) [7][]TrainingLog {
	var buckets [7][]TrainingLog
	for i := range buckets {
		buckets[i] = []TrainingLog{}
	}
	weekStart = Midnight(weekStart)
	for _, r := range records {
		i := DaysBetween(weekStart, r.DateRegistered)
		if i < 0 || i > 6 {
			continue
		}
		buckets[i] = append(buckets[i], r)
	}
	return buckets
}

// StatusFor derives a day's status from whether it has entries.
func StatusFor(day, today time.Time, hasEntries bool) DayStatus {
	switch {
	case hasEntries:
		return StatusConcluded
	case DaysBetween(day, today) > 0:
		return StatusMissed
	default:
		return StatusPending
	}
}

// WeekDay is one rendered day of the training week.
type WeekDay struct {
	Date    time.Time     `json:"-"`
	Weekday time.Weekday  `json:"weekday"`
	Status  DayStatus     `json:"status"`
	Entries []TrainingLog `json:"entries"`
}

// BuildTrainingWeek groups records into the week beginning at weekStart and
// assigns each day its status relative to today. The caller owns the returned
// value; nothing is cached between calls.
func BuildTrainingWeek(records []TrainingLog, weekStart, today time.Time) [7]WeekDay {
	start := Midnight(weekStart)
	buckets := GroupTrainingByWeekday(records, start)

	var week [7]WeekDay
	for i := range week {
		day := AddDays(start, i)
		week[i] = WeekDay{
			Date:    day,
			Weekday: day.Weekday(),
			Status:  StatusFor(day, today, len(buckets[i]) > 0),
			Entries: buckets[i],
		}
	}
	return week
}
