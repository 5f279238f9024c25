package models

import "time"

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Habit is a recurring practice owned by a single user.
type Habit struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Frequency   Frequency `json:"frequency"`
	TargetCount int       `json:"target_count"`
	Color       string    `json:"color,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CheckIn is a single day's record for a habit. At most one check-in exists
// per (HabitID, Date) pair; writes upsert by that key. Completed=false is a
// real record: it marks a day as explicitly unchecked.
type CheckIn struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	Completed bool      `json:"completed"`
	Note      string    `json:"note,omitempty"`
	Timestamp time.Time `json:"timestamp"` // time of last write
}

// HabitStats is derived from a habit's check-in history. It is never
// persisted; callers recompute it on demand.
type HabitStats struct {
	HabitID        string  `json:"habit_id"`
	CurrentStreak  int     `json:"current_streak"`
	LongestStreak  int     `json:"longest_streak"`
	TotalCheckIns  int     `json:"total_check_ins"`
	CompletionRate float64 `json:"completion_rate"` // percentage in [0,100]
}

// HabitColors is the palette offered when creating habits. New habits
// without an explicit color cycle through it in order.
var HabitColors = []string{
	"#3b82f6", // blue
	"#8b5cf6", // purple
	"#ec4899", // pink
	"#f43f5e", // rose
	"#f59e0b", // amber
	"#10b981", // green
	"#06b6d4", // cyan
	"#6366f1", // indigo
}
