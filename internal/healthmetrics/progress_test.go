package healthmetrics

import (
	"strings"
	"testing"
)

func TestFormatProgress(t *testing.T) {
	cases := []struct {
		in   Progress
		want string
	}{
		{Progress{Sets: "3", Reps: "10", Load: "40kg"}, "3x10 @ 40kg"},
		{Progress{Sets: "4", Reps: "8"}, "4x8"},
		{Progress{Load: "20kg"}, "@ 20kg"},
		{Progress{}, ""},
	}
	for _, tc := range cases {
		if got := FormatProgress(tc.in); got != tc.want {
			t.Errorf("FormatProgress(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseProgress(t *testing.T) {
	cases := []struct {
		in   string
		want Progress
	}{
		{"3x10 @ 40kg", Progress{Sets: "3", Reps: "10", Load: "40kg"}},
		{"4x8", Progress{Sets: "4", Reps: "8"}},
		{"@ 20kg", Progress{Load: "20kg"}},
		{"5 X 5 @ 100", Progress{Sets: "5", Reps: "5", Load: "100"}},
		{"box jumps", Progress{Load: "box jumps"}},
		{"3,5x10 @ 40kg", Progress{Sets: "3,5", Reps: "10", Load: "40kg"}},
		{"3x8-12", Progress{Sets: "3", Reps: "8-12"}},
		{"", Progress{}},
	}
	for _, tc := range cases {
		if got := ParseProgress(tc.in); got != tc.want {
			t.Errorf("ParseProgress(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseLoad(t *testing.T) {
	cases := map[string]float64{
		"40kg":       40,
		"42,5 kg":    42.5,
		"100.25":     100.25,
		"kg":         0,
		"":           0,
		"PR: 7.5x":   7.5,
		"2x20kg":     2,
		"40-45kg":    40,
		"20 + 20 kg": 20,
		"1,5x":       1.5,
	}
	for in, want := range cases {
		if got := ParseLoad(in); got != want {
			t.Errorf("ParseLoad(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsNewRecord(t *testing.T) {
	cases := []struct {
		current, candidate string
		want               bool
	}{
		{"40kg", "45kg", true},
		{"40kg", "40kg", false},
		{"40kg", "35kg", false},
		{"", "10", true},
		{"10", "", false},
		{"10", "heavy", false},
		{"100kg", "2x20kg", false},
		{"50kg", "40-45kg", false},
	}
	for _, tc := range cases {
		if got := IsNewRecord(tc.current, tc.candidate); got != tc.want {
			t.Errorf("IsNewRecord(%q, %q) = %v, want %v", tc.current, tc.candidate, got, tc.want)
		}
	}
}

// TestProgressRoundTrip formats every combination of accepted parts and
// checks that parsing gives them back.
func TestProgressRoundTrip(t *testing.T) {
	sets := []string{"", "3", "3,5", "2.5", " 4 ", "10"}
	reps := []string{"", "10", "8-12", "60s", "até a falha", "x5", "3x10", " 12 "}
	loads := []string{"", "40kg", "42,5 kg", "@ 20", "2x20kg", "bodyweight", "x", "a\nb"}

	for _, s := range sets {
		for _, r := range reps {
			for _, l := range loads {
				if !ValidSets(s) || !ValidReps(r) {
					t.Fatalf("sample %q/%q is outside the accepted alphabet", s, r)
				}
				in := Progress{Sets: s, Reps: r, Load: l}
				want := Progress{Sets: strings.TrimSpace(s), Reps: strings.TrimSpace(r), Load: strings.TrimSpace(l)}
				text := FormatProgress(in)
				if got := ParseProgress(text); got != want {
					t.Errorf("%+v -> %q -> %+v, want %+v", in, text, got, want)
				}
			}
		}
	}
}

func TestValidSetsAndReps(t *testing.T) {
	for _, s := range []string{"three", "3x", "3@", "-1"} {
		if ValidSets(s) {
			t.Errorf("ValidSets(%q) = true, want false", s)
		}
	}
	if ValidReps("10 @ 5") {
		t.Error(`ValidReps("10 @ 5") = true, want false`)
	}
	if !ValidReps("8-12") || !ValidSets("3,5") {
		t.Error("expected 8-12 reps and 3,5 sets to be accepted")
	}
}
