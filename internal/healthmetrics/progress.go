package healthmetrics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Progress is the structured form of a TrainingLog's ProgressText.
type Progress struct {
	Sets string `json:"sets"`
	Reps string `json:"reps"`
	Load string `json:"load"`
}

// Sets are numeric ("3", "3,5"); reps are anything without an "@", which
// starts the load. ValidSets and ValidReps enforce the same alphabet on input.
var progressPattern = regexp.MustCompile(`(?s)^\s*([0-9.,]*)\s*[xX]\s*([^@]*?)\s*(?:@\s*(.*?))?\s*$`)

var setsPattern = regexp.MustCompile(`^[0-9.,]*$`)

// ValidSets reports whether s can be stored as the sets part of a progress
// text and read back unchanged.
func ValidSets(s string) bool {
	return setsPattern.MatchString(strings.TrimSpace(s))
}

// ValidReps reports whether s can be stored as the reps part.
func ValidReps(s string) bool {
	return !strings.Contains(s, "@")
}

// FormatProgress encodes sets, reps, and load as "3x10 @ 40kg". Empty parts
// are omitted.
func FormatProgress(p Progress) string {
	sets, reps, load := strings.TrimSpace(p.Sets), strings.TrimSpace(p.Reps), strings.TrimSpace(p.Load)
	var b strings.Builder
	if sets != "" || reps != "" {
		fmt.Fprintf(&b, "%sx%s", sets, reps)
	}
	if load != "" {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString("@ " + load)
	}
	return b.String()
}

// ParseProgress is the inverse of FormatProgress. Text that does not follow
// the encoding is returned whole as the load.
func ParseProgress(text string) Progress {
	text = strings.TrimSpace(text)
	if text == "" {
		return Progress{}
	}
	if strings.HasPrefix(text, "@") {
		return Progress{Load: strings.TrimSpace(strings.TrimPrefix(text, "@"))}
	}
	m := progressPattern.FindStringSubmatch(text)
	if m == nil {
		return Progress{Load: text}
	}
	return Progress{Sets: m[1], Reps: m[2], Load: m[3]}
}

var firstNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)

// ParseLoad pulls the first number out of a free-form value such as
// "42,5 kg". A comma is accepted as the decimal separator. Compound values
// like "2x20kg" or "40-45kg" read as their first number. Unparseable input
// yields 0.
func ParseLoad(value string) float64 {
	digits := strings.Replace(firstNumber.FindString(value), ",", ".", 1)
	f, err := strconv.ParseFloat(digits, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// IsNewRecord reports whether candidate beats current. A candidate without a
// positive magnitude never counts.
func IsNewRecord(current, candidate string) bool {
	c := ParseLoad(candidate)
	return c > 0 && c > ParseLoad(current)
}
