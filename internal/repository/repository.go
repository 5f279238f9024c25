// Package repository holds the habit and check-in operations the commands
// build on. It scopes habits by owner, enforces the one-check-in-per-day
// upsert key, and keeps habit deletion free of orphaned check-ins.
package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/stats"
	"github.com/julianstephens/habitkit/internal/storage"
	"github.com/julianstephens/habitkit/internal/validation"
)

// ErrNotFound mirrors the storage sentinel so callers only import this
// package.
var ErrNotFound = storage.ErrNotFound

type Repository struct {
	store storage.Provider
}

func New(store storage.Provider) *Repository {
	return &Repository{store: store}
}

// HabitInput carries the user-editable habit fields.
type HabitInput struct {
	Name        string
	Description string
	Frequency   models.Frequency
	TargetCount int
	Color       string
}

func (in HabitInput) validate() error {
	if err := validation.HabitName(in.Name); err != nil {
		return err
	}
	if err := validation.Frequency(in.Frequency); err != nil {
		return err
	}
	if err := validation.TargetCount(in.TargetCount); err != nil {
		return err
	}
	return validation.HabitColor(in.Color)
}

// ListHabits returns the user's habits in the order they were created.
func (r *Repository) ListHabits(userID string) ([]models.Habit, error) {
	return r.store.GetHabitsForUser(userID)
}

func (r *Repository) GetHabit(id string) (models.Habit, error) {
	return r.store.GetHabit(id)
}

// GetHabitByName resolves a habit by exact name within a user's habits.
func (r *Repository) GetHabitByName(userID, name string) (models.Habit, error) {
	habits, err := r.store.GetHabitsForUser(userID)
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range habits {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", name, ErrNotFound)
}

// CreateHabit assigns a fresh id and creation timestamp and persists the
// habit. An empty color gets the next palette entry, cycling in creation
// order like the original client's picker.
func (r *Repository) CreateHabit(userID string, input HabitInput) (models.Habit, error) {
	if err := input.validate(); err != nil {
		return models.Habit{}, err
	}

	color := input.Color
	if color == "" {
		existing, err := r.store.GetHabitsForUser(userID)
		if err != nil {
			return models.Habit{}, err
		}
		color = models.HabitColors[len(existing)%len(models.HabitColors)]
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		TargetCount: input.TargetCount,
		Color:       color,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.store.AddHabit(habit); err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

// UpdateHabit replaces the stored record by id. A missing habit is an
// explicit ErrNotFound, never a silent no-op.
func (r *Repository) UpdateHabit(habit models.Habit) error {
	input := HabitInput{
		Name:        habit.Name,
		Description: habit.Description,
		Frequency:   habit.Frequency,
		TargetCount: habit.TargetCount,
		Color:       habit.Color,
	}
	if err := input.validate(); err != nil {
		return err
	}
	return r.store.UpdateHabit(habit)
}

// DeleteHabit removes a habit and every check-in that references it. The
// check-ins go first: if the second write is interrupted, the leftover is a
// habit with no history, never orphaned check-ins pointing at a missing
// habit.
func (r *Repository) DeleteHabit(habitID string) error {
	if _, err := r.store.GetHabit(habitID); err != nil {
		return err
	}
	if err := r.store.DeleteCheckInsForHabit(habitID); err != nil {
		return fmt.Errorf("failed to delete check-ins: %w", err)
	}
	return r.store.DeleteHabit(habitID)
}

// ListCheckIns returns every check-in recorded for a habit.
func (r *Repository) ListCheckIns(habitID string) ([]models.CheckIn, error) {
	return r.store.GetCheckInsForHabit(habitID)
}

// UpsertCheckIn records the day's state for a habit. An existing record for
// (habitID, date) keeps its id and has completed, note, and timestamp
// replaced; otherwise a new record is created. Recording against a missing
// habit is an explicit error.
func (r *Repository) UpsertCheckIn(habitID, date string, completed bool, note string) (models.CheckIn, error) {
	if err := validation.Date(date); err != nil {
		return models.CheckIn{}, err
	}
	if _, err := r.store.GetHabit(habitID); err != nil {
		return models.CheckIn{}, err
	}

	checkIn := models.CheckIn{
		ID:        uuid.New().String(),
		HabitID:   habitID,
		Date:      date,
		Completed: completed,
		Note:      note,
		Timestamp: time.Now().UTC(),
	}

	if existing, err := r.store.GetCheckIn(habitID, date); err == nil {
		checkIn.ID = existing.ID
	} else if !errors.Is(err, ErrNotFound) {
		return models.CheckIn{}, err
	}

	if err := r.store.SaveCheckIn(checkIn); err != nil {
		return models.CheckIn{}, err
	}
	return checkIn, nil
}

// Stats recomputes the derived numbers for a habit as of today.
func (r *Repository) Stats(habitID string, today time.Time) (models.HabitStats, error) {
	habit, err := r.store.GetHabit(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	checkIns, err := r.store.GetCheckInsForHabit(habitID)
	if err != nil {
		return models.HabitStats{}, err
	}
	return stats.ForHabit(habit, checkIns, today), nil
}
