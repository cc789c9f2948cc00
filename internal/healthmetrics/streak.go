package healthmetrics

import "time"

// StreakInfo is the pair shown on the training screen.
type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreak counts consecutive trained days ending today or yesterday.
//
// completedDesc must be sorted most recent first and contain only days where
// training was completed. If the most recent entry is neither today nor
// yesterday the streak is already broken and 0 is returned. Entries are not
// deduplicated: a repeated day fails the "previous minus one day" check and
// ends the walk.
func ComputeStreak(completedDesc []time.Time, today time.Time) int {
	if len(completedDesc) == 0 {
		return 0
	}

	today = Midnight(today)
	yesterday := AddDays(today, -1)

	mostRecent := completedDesc[0]
	if !SameDay(mostRecent, today) && !SameDay(mostRecent, yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(completedDesc); i++ {
		expected := AddDays(Midnight(completedDesc[i-1]), -1)
		if !SameDay(completedDesc[i], expected) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive days anywhere in
// completedDesc (same ordering contract as ComputeStreak).
func LongestStreak(completedDesc []time.Time) int {
	if len(completedDesc) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(completedDesc); i++ {
		if DaysBetween(completedDesc[i], completedDesc[i-1]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// Streaks computes both the current and longest streak. Longest is never
// smaller than Current.
func Streaks(completedDesc []time.Time, today time.Time) StreakInfo {
	info := StreakInfo{
		Current: ComputeStreak(completedDesc, today),
		Longest: LongestStreak(completedDesc),
	}
	if info.Current > info.Longest {
		info.Longest = info.Current
	}
	return info
}
