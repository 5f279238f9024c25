package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/models"
)

// jsonState is the single-file layout of the JSON provider. The collection
// names mirror the original client's persisted keys (users, habits,
// checkIns, currentUser, theme) with an added schema version.
type jsonState struct {
	Version     int              `json:"version"`
	Users       []models.User    `json:"users"`
	Habits      []models.Habit   `json:"habits"`
	CheckIns    []models.CheckIn `json:"checkIns"`
	CurrentUser string           `json:"currentUser,omitempty"`
	Theme       models.Theme     `json:"theme,omitempty"`
}

// JSONStore persists everything in one human-readable JSON file. Slices keep
// insertion order, so habit listings come back in the order they were
// created. Every mutation rewrites the whole file.
type JSONStore struct {
	path  string
	state *jsonState
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.state = &jsonState{Version: constants.JSONSchemaVersion, Theme: models.ThemeLight}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'habitkit init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	state := &jsonState{}
	if err := json.Unmarshal(data, state); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if state.Version > constants.JSONSchemaVersion {
		return fmt.Errorf("storage schema version (%d) is newer than supported version (%d) - please upgrade the application", state.Version, constants.JSONSchemaVersion)
	}

	s.state = state
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) loaded() error {
	if s.state == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

// Users

func (s *JSONStore) AddUser(user models.User) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.state.Users = append(s.state.Users, user)
	return s.save()
}

func (s *JSONStore) GetUser(id string) (models.User, error) {
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}

	for _, u := range s.state.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user: %w", ErrNotFound)
}

func (s *JSONStore) GetUserByEmail(email string) (models.User, error) {
	if err := s.loaded(); err != nil {
		return models.User{}, err
	}

	// Exact match, case included.
	for _, u := range s.state.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("user: %w", ErrNotFound)
}

func (s *JSONStore) GetAllUsers() ([]models.User, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	users := make([]models.User, len(s.state.Users))
	copy(users, s.state.Users)
	return users, nil
}

func (s *JSONStore) UpdateUser(user models.User) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, u := range s.state.Users {
		if u.ID == user.ID {
			s.state.Users[i] = user
			return s.save()
		}
	}
	return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
}

// Session pointer

func (s *JSONStore) CurrentUserID() (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	return s.state.CurrentUser, nil
}

func (s *JSONStore) SetCurrentUserID(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.state.CurrentUser = id
	return s.save()
}

func (s *JSONStore) ClearCurrentUser() error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.state.CurrentUser = ""
	return s.save()
}

// Theme preference

func (s *JSONStore) GetTheme() (models.Theme, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}

	if !s.state.Theme.Valid() {
		return models.ThemeLight, nil
	}
	return s.state.Theme, nil
}

func (s *JSONStore) SaveTheme(theme models.Theme) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.state.Theme = theme
	return s.save()
}

// Habits

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}

	s.state.Habits = append(s.state.Habits, habit)
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if err := s.loaded(); err != nil {
		return models.Habit{}, err
	}

	for _, h := range s.state.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
}

func (s *JSONStore) GetHabitsForUser(userID string) ([]models.Habit, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var habits []models.Habit
	for _, h := range s.state.Habits {
		if h.UserID == userID {
			habits = append(habits, h)
		}
	}
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, h := range s.state.Habits {
		if h.ID == habit.ID {
			s.state.Habits[i] = habit
			return s.save()
		}
	}
	return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, h := range s.state.Habits {
		if h.ID == id {
			s.state.Habits = append(s.state.Habits[:i], s.state.Habits[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("habit %s: %w", id, ErrNotFound)
}

// Check-ins

func (s *JSONStore) SaveCheckIn(checkIn models.CheckIn) error {
	if err := s.loaded(); err != nil {
		return err
	}

	for i, c := range s.state.CheckIns {
		if c.HabitID == checkIn.HabitID && c.Date == checkIn.Date {
			// Preserve the original id of the slot.
			checkIn.ID = c.ID
			s.state.CheckIns[i] = checkIn
			return s.save()
		}
	}

	s.state.CheckIns = append(s.state.CheckIns, checkIn)
	return s.save()
}

func (s *JSONStore) GetCheckIn(habitID, date string) (models.CheckIn, error) {
	if err := s.loaded(); err != nil {
		return models.CheckIn{}, err
	}

	for _, c := range s.state.CheckIns {
		if c.HabitID == habitID && c.Date == date {
			return c, nil
		}
	}
	return models.CheckIn{}, fmt.Errorf("check-in for %s on %s: %w", habitID, date, ErrNotFound)
}

func (s *JSONStore) GetCheckInsForHabit(habitID string) ([]models.CheckIn, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}

	var checkIns []models.CheckIn
	for _, c := range s.state.CheckIns {
		if c.HabitID == habitID {
			checkIns = append(checkIns, c)
		}
	}
	return checkIns, nil
}

func (s *JSONStore) DeleteCheckInsForHabit(habitID string) error {
	if err := s.loaded(); err != nil {
		return err
	}

	kept := s.state.CheckIns[:0]
	for _, c := range s.state.CheckIns {
		if c.HabitID != habitID {
			kept = append(kept, c)
		}
	}
	s.state.CheckIns = kept
	return s.save()
}
