package storage

import (
	"errors"

	"github.com/julianstephens/habitkit/internal/models"
)

// ErrNotFound is returned when a requested record does not exist. Providers
// wrap it so callers can branch with errors.Is.
var ErrNotFound = errors.New("not found")

// Provider is the durable storage behind the session manager and the habit
// repository. Two implementations exist: a SQLite store (default) and a
// single-file JSON store. Each write persists independently; providers make
// no cross-call transactional guarantees.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Users
	AddUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(models.User) error

	// Session pointer. CurrentUserID returns "" with no error when no
	// session is stored.
	CurrentUserID() (string, error)
	SetCurrentUserID(id string) error
	ClearCurrentUser() error

	// Theme preference. GetTheme returns ThemeLight when unset.
	GetTheme() (models.Theme, error)
	SaveTheme(models.Theme) error

	// Habits. GetHabitsForUser returns habits in insertion order.
	// UpdateHabit fails with ErrNotFound for an unknown id; it never
	// inserts.
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitsForUser(userID string) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Check-ins. SaveCheckIn upserts by (habit_id, date): an existing row
	// keeps its id and has completed, note, and timestamp replaced.
	SaveCheckIn(models.CheckIn) error
	GetCheckIn(habitID, date string) (models.CheckIn, error)
	GetCheckInsForHabit(habitID string) ([]models.CheckIn, error)
	DeleteCheckInsForHabit(habitID string) error
}
