package main

import (
	"errors"
	"math"
	"time"
)

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels, also used for
// input validation in patchProfile.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var errImplausibleBody = errors.New("height/weight out of plausible range")

// calculateBMI expects height in centimeters and weight in kilograms.
func calculateBMI(heightCM, weightKG float64) (float64, error) {
	if heightCM <= 0 || weightKG <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	if heightCM < 50 || heightCM > 250 || weightKG < 10 || weightKG > 400 {
		return 0, errImplausibleBody
	}
	m := heightCM / 100
	return weightKG / (m * m), nil
}

// bmiCategory returns the WHO band label for a BMI value.
func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	case bmi < 35:
		return "Obesity class I"
	case bmi < 40:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// ageOn returns whole years between dob and today.
func ageOn(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Before(dob.AddDate(age, 0, 0)) {
		age--
	}
	return age
}

// computeBMRAndTDEE runs Mifflin-St Jeor and applies the activity multiplier.
// Returns ok=false when any required profile field is nil, the activity level
// is unknown, or the age is implausible.
func computeBMRAndTDEE(p *profile, today time.Time) (bmr, tdee int, ok bool) {
	if p.Sex == nil || p.DateOfBirth == nil || p.HeightCM == nil ||
		p.WeightKG == nil || p.ActivityLevel == nil {
		return 0, 0, false
	}

	age := ageOn(p.DateOfBirth.Time, today)
	if age < 0 || age > 130 {
		return 0, 0, false
	}

	mult, found := activityMultipliers[*p.ActivityLevel]
	if !found {
		return 0, 0, false
	}

	bmrF := 10**p.WeightKG + 6.25**p.HeightCM - 5*float64(age)
	if *p.Sex == "male" {
		bmrF += 5
	} else {
		bmrF -= 161
	}
	return int(math.Round(bmrF)), int(math.Round(bmrF * mult)), true
}

// populateBodyMetrics fills the computed-only fields on p. Each metric is
// set independently so a partial profile still gets a BMI.
func populateBodyMetrics(p *profile, today time.Time) {
	if p.HeightCM != nil && p.WeightKG != nil {
		if bmi, err := calculateBMI(*p.HeightCM, *p.WeightKG); err == nil {
			rounded := math.Round(bmi*10) / 10
			category := bmiCategory(bmi)
			p.BMI = &rounded
			p.BMICategory = &category
		}
	}
	if bmr, tdee, ok := computeBMRAndTDEE(p, today); ok {
		p.ComputedBMR = &bmr
		p.ComputedTDEE = &tdee
	}
}
