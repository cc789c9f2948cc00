package healthmetrics

import (
	"sort"
	"time"
)

// Food is a catalog entry. Kcal and Protein are per BaseGrams.
type Food struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Kcal      float64 `json:"kcal"`
	Protein   float64 `json:"protein"`
	BaseGrams float64 `json:"base_g"`
}

// KcalFor scales the food's energy to grams. A non-positive amount means one
// base portion.
func (f Food) KcalFor(grams float64) float64 {
	base := f.BaseGrams
	if base <= 0 {
		base = 100
	}
	if grams <= 0 {
		grams = base
	}
	kcal := f.Kcal * grams / base
	if kcal < 0 {
		return 0
	}
	return kcal
}

// Exercise is an exercise catalog entry.
type Exercise struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	MuscleGroup  string `json:"muscle_group"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"image_url"`
}

// OtherMuscleGroup collects exercises with no muscle group.
const OtherMuscleGroup = "Other"

// ExerciseSection is one muscle group and its exercises.
type ExerciseSection struct {
	Title     string     `json:"title"`
	Exercises []Exercise `json:"exercises"`
}

// GroupExercisesByMuscle buckets exercises by muscle group, sections sorted
// by title. Exercises keep their input order inside a section.
func GroupExercisesByMuscle(exercises []Exercise) []ExerciseSection {
	byGroup := make(map[string][]Exercise)
	for _, e := range exercises {
		g := e.MuscleGroup
		if g == "" {
			g = OtherMuscleGroup
		}
		byGroup[g] = append(byGroup[g], e)
	}

	sections := make([]ExerciseSection, 0, len(byGroup))
	for title, list := range byGroup {
		sections = append(sections, ExerciseSection{Title: title, Exercises: list})
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].Title < sections[j].Title })
	return sections
}

// PlanItem is one exercise scheduled on a weekday of the user's plan.
type PlanItem struct {
	ID       int          `json:"id"`
	UserID   int          `json:"-"`
	Weekday  time.Weekday `json:"weekday"`
	Sets     int          `json:"sets"`
	Reps     string       `json:"reps"`
	Notes    string       `json:"notes"`
	Exercise Exercise     `json:"exercise"`
}

// PlanDay is one weekday of the plan.
type PlanDay struct {
	Weekday time.Weekday `json:"weekday"`
	Name    string       `json:"name"`
	Items   []PlanItem   `json:"items"`
}

// GroupPlanByWeekday returns the days that have at least one item, Sunday
// first. Items with a weekday outside Sunday..Saturday are dropped.
func GroupPlanByWeekday(items []PlanItem) []PlanDay {
	var buckets [7][]PlanItem
	for _, it := range items {
		if it.Weekday < time.Sunday || it.Weekday > time.Saturday {
			continue
		}
		buckets[it.Weekday] = append(buckets[it.Weekday], it)
	}

	days := []PlanDay{}
	for wd, list := range buckets {
		if len(list) == 0 {
			continue
		}
		days = append(days, PlanDay{Weekday: time.Weekday(wd), Name: time.Weekday(wd).String(), Items: list})
	}
	return days
}
