package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

// Streak is a pair of consecutive-day run lengths for a habit.
type Streak struct {
	Current int
	Longest int
}

// CalculateStreak computes the current and longest runs of consecutive
// completed days in the given check-ins, evaluated as of today. The current
// streak only counts when the most recent completed day is today or
// yesterday; an older last completion means the streak is broken.
//
// The function is pure: it reads nothing but its arguments and performs no
// I/O. Callers pass time.Now() for live evaluation.
func CalculateStreak(checkIns []models.CheckIn, today time.Time) Streak {
	dates := completedDates(checkIns)
	if len(dates) == 0 {
		return Streak{}
	}

	// Zero-padded ISO dates sort lexicographically in calendar order.
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	return Streak{
		Current: currentStreak(dates, today),
		Longest: longestStreak(dates),
	}
}

func currentStreak(sortedDesc []string, today time.Time) int {
	todayStr := today.Format(constants.DateFormat)
	yesterdayStr := today.AddDate(0, 0, -1).Format(constants.DateFormat)

	// The run must be anchored at today or yesterday to still count.
	if sortedDesc[0] != todayStr && sortedDesc[0] != yesterdayStr {
		return 0
	}

	streak := 0
	expected := sortedDesc[0]
	for _, date := range sortedDesc {
		switch {
		case date == expected:
			streak++
			expected = previousDay(expected)
		case date < expected:
			// Gap: the run is over.
			return streak
		default:
			// Duplicate of an already-counted day. The upsert invariant
			// should make this unreachable, but it must not break the walk.
		}
	}
	return streak
}

func longestStreak(sortedDesc []string) int {
	longest := 0
	run := 0
	for i, date := range sortedDesc {
		if i == 0 {
			run = 1
			continue
		}
		switch dayDiff(sortedDesc[i-1], date) {
		case 1:
			run++
		case 0:
			// Duplicate date: neither extends nor breaks the run.
		default:
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	return longest
}

// CalculateCompletionRate returns the percentage of expected check-ins that
// were actually completed since the habit was created, capped at 100.
// Expected counts use fixed-length periods: raw days for daily habits, 7-day
// periods for weekly, 30-day periods for monthly.
func CalculateCompletionRate(habit models.Habit, checkIns []models.CheckIn, today time.Time) float64 {
	days := daysSince(habit.CreatedAt, today)
	if days < 1 {
		days = 1
	}

	var periods int
	switch habit.Frequency {
	case models.FrequencyWeekly:
		periods = ceilDiv(days, constants.DaysPerWeek)
	case models.FrequencyMonthly:
		periods = ceilDiv(days, constants.DaysPerMonth)
	default:
		periods = days
	}

	expected := periods * habit.TargetCount
	if expected <= 0 {
		return 0
	}

	actual := len(completedDates(checkIns))
	rate := float64(actual) / float64(expected) * 100
	if rate > 100 {
		return 100
	}
	return rate
}

// ForHabit composes the streak and completion-rate calculations into the
// derived stats record for a habit.
func ForHabit(habit models.Habit, checkIns []models.CheckIn, today time.Time) models.HabitStats {
	streak := CalculateStreak(checkIns, today)
	return models.HabitStats{
		HabitID:        habit.ID,
		CurrentStreak:  streak.Current,
		LongestStreak:  streak.Longest,
		TotalCheckIns:  len(completedDates(checkIns)),
		CompletionRate: CalculateCompletionRate(habit, checkIns, today),
	}
}

func completedDates(checkIns []models.CheckIn) []string {
	dates := make([]string, 0, len(checkIns))
	for _, c := range checkIns {
		if c.Completed {
			dates = append(dates, c.Date)
		}
	}
	return dates
}

func previousDay(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format(constants.DateFormat)
}

// dayDiff returns the calendar-day difference a-b. Malformed dates yield a
// large difference so they terminate any run instead of extending it.
func dayDiff(a, b string) int {
	ta, errA := time.Parse(constants.DateFormat, a)
	tb, errB := time.Parse(constants.DateFormat, b)
	if errA != nil || errB != nil {
		return int(^uint(0) >> 1)
	}
	return int(ta.Sub(tb).Hours() / 24)
}

func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}

func daysSince(created, today time.Time) int {
	start := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}
