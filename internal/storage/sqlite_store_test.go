package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitkit/internal/models"
)

func setupTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func testUser() models.User {
	return models.User{
		ID:           uuid.New().String(),
		Email:        "jo@example.com",
		Name:         "Jo",
		PasswordHash: "$2a$10$fakehashfortests",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func testHabit(userID string) models.Habit {
	return models.Habit{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        "Morning run",
		Description: "5k before work",
		Frequency:   models.FrequencyDaily,
		TargetCount: 1,
		Color:       models.HabitColors[0],
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestUserRoundTrip(t *testing.T) {
	store := setupTestSQLiteStore(t)

	user := testUser()
	if err := store.AddUser(user); err != nil {
		t.Fatalf("failed to add user: %v", err)
	}

	got, err := store.GetUser(user.ID)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	if got.Email != user.Email || got.Name != user.Name || got.PasswordHash != user.PasswordHash {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, user)
	}
	if !got.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("created_at not rehydrated: got %v, want %v", got.CreatedAt, user.CreatedAt)
	}

	byEmail, err := store.GetUserByEmail(user.Email)
	if err != nil {
		t.Fatalf("failed to get user by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected id %q, got %q", user.ID, byEmail.ID)
	}
}

func TestGetUserByEmailIsCaseSensitive(t *testing.T) {
	store := setupTestSQLiteStore(t)

	user := testUser()
	if err := store.AddUser(user); err != nil {
		t.Fatalf("failed to add user: %v", err)
	}

	_, err := store.GetUserByEmail("JO@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for differently-cased email, got %v", err)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	store := setupTestSQLiteStore(t)

	err := store.UpdateUser(testUser())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHabitRoundTrip(t *testing.T) {
	store := setupTestSQLiteStore(t)

	habit := testHabit("user-1")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != habit.Name || got.Description != habit.Description ||
		got.Frequency != habit.Frequency || got.TargetCount != habit.TargetCount ||
		got.Color != habit.Color || got.UserID != habit.UserID {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, habit)
	}
	if !got.CreatedAt.Equal(habit.CreatedAt) {
		t.Errorf("created_at not rehydrated: got %v, want %v", got.CreatedAt, habit.CreatedAt)
	}
}

func TestHabitsListedInInsertionOrder(t *testing.T) {
	store := setupTestSQLiteStore(t)

	created := time.Now().UTC().Truncate(time.Second)
	names := []string{"Run", "Read", "Write", "Stretch"}
	for _, name := range names {
		h := testHabit("user-1")
		h.Name = name
		h.CreatedAt = created // identical timestamps must not reorder
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("failed to add habit %q: %v", name, err)
		}
	}

	habits, err := store.GetHabitsForUser("user-1")
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != len(names) {
		t.Fatalf("expected %d habits, got %d", len(names), len(habits))
	}
	for i, name := range names {
		if habits[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, habits[i].Name)
		}
	}
}

func TestHabitsScopedByUser(t *testing.T) {
	store := setupTestSQLiteStore(t)

	mine := testHabit("user-1")
	theirs := testHabit("user-2")
	if err := store.AddHabit(mine); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if err := store.AddHabit(theirs); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	habits, err := store.GetHabitsForUser("user-1")
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != mine.ID {
		t.Errorf("expected only user-1's habit, got %+v", habits)
	}
}

func TestUpdateMissingHabit(t *testing.T) {
	store := setupTestSQLiteStore(t)

	err := store.UpdateHabit(testHabit("user-1"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckInUpsertIsIdempotent(t *testing.T) {
	store := setupTestSQLiteStore(t)

	habit := testHabit("user-1")
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	first := models.CheckIn{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Date:      "2024-01-01",
		Completed: true,
		Note:      "done",
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.SaveCheckIn(first); err != nil {
		t.Fatalf("failed to save check-in: %v", err)
	}

	// Second write for the same (habit, date) must replace, not duplicate.
	second := models.CheckIn{
		ID:        uuid.New().String(),
		HabitID:   habit.ID,
		Date:      "2024-01-01",
		Completed: false,
		Note:      "skipped after all",
		Timestamp: time.Now().UTC().Truncate(time.Second).Add(time.Minute),
	}
	if err := store.SaveCheckIn(second); err != nil {
		t.Fatalf("failed to upsert check-in: %v", err)
	}

	checkIns, err := store.GetCheckInsForHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to list check-ins: %v", err)
	}
	if len(checkIns) != 1 {
		t.Fatalf("expected exactly one check-in, got %d", len(checkIns))
	}

	got := checkIns[0]
	if got.ID != first.ID {
		t.Errorf("upsert must preserve the original id: got %q, want %q", got.ID, first.ID)
	}
	if got.Completed {
		t.Error("expected completed=false after upsert")
	}
	if got.Note != second.Note {
		t.Errorf("expected note %q, got %q", second.Note, got.Note)
	}
	if !got.Timestamp.Equal(second.Timestamp) {
		t.Errorf("expected refreshed timestamp %v, got %v", second.Timestamp, got.Timestamp)
	}
}

func TestDeleteCheckInsForHabit(t *testing.T) {
	store := setupTestSQLiteStore(t)

	habit := testHabit("user-1")
	other := testHabit("user-1")
	for _, h := range []models.Habit{habit, other} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("failed to add habit: %v", err)
		}
		for _, date := range []string{"2024-01-01", "2024-01-02"} {
			c := models.CheckIn{
				ID:        uuid.New().String(),
				HabitID:   h.ID,
				Date:      date,
				Completed: true,
				Timestamp: time.Now().UTC(),
			}
			if err := store.SaveCheckIn(c); err != nil {
				t.Fatalf("failed to save check-in: %v", err)
			}
		}
	}

	if err := store.DeleteCheckInsForHabit(habit.ID); err != nil {
		t.Fatalf("failed to delete check-ins: %v", err)
	}

	gone, err := store.GetCheckInsForHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to list check-ins: %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("expected no check-ins for deleted habit, got %d", len(gone))
	}

	kept, err := store.GetCheckInsForHabit(other.ID)
	if err != nil {
		t.Fatalf("failed to list check-ins: %v", err)
	}
	if len(kept) != 2 {
		t.Errorf("other habit's check-ins must be untouched, got %d", len(kept))
	}
}

func TestSessionPointer(t *testing.T) {
	store := setupTestSQLiteStore(t)

	id, err := store.CurrentUserID()
	if err != nil {
		t.Fatalf("failed to read empty session: %v", err)
	}
	if id != "" {
		t.Errorf("expected empty session, got %q", id)
	}

	if err := store.SetCurrentUserID("user-1"); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
	if err := store.SetCurrentUserID("user-2"); err != nil {
		t.Fatalf("failed to replace session: %v", err)
	}

	id, err = store.CurrentUserID()
	if err != nil {
		t.Fatalf("failed to read session: %v", err)
	}
	if id != "user-2" {
		t.Errorf("expected user-2, got %q", id)
	}

	if err := store.ClearCurrentUser(); err != nil {
		t.Fatalf("failed to clear session: %v", err)
	}
	id, err = store.CurrentUserID()
	if err != nil {
		t.Fatalf("failed to read cleared session: %v", err)
	}
	if id != "" {
		t.Errorf("expected cleared session, got %q", id)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	if err := store.SetCurrentUserID("user-1"); err != nil {
		t.Fatalf("failed to set session: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("failed to close store: %v", err)
	}

	reopened := NewSQLiteStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	defer reopened.Close()

	id, err := reopened.CurrentUserID()
	if err != nil {
		t.Fatalf("failed to read session after reopen: %v", err)
	}
	if id != "user-1" {
		t.Errorf("expected session to survive reopen, got %q", id)
	}
}

func TestThemePreference(t *testing.T) {
	store := setupTestSQLiteStore(t)

	theme, err := store.GetTheme()
	if err != nil {
		t.Fatalf("failed to read default theme: %v", err)
	}
	if theme != models.ThemeLight {
		t.Errorf("expected light default, got %q", theme)
	}

	if err := store.SaveTheme(models.ThemeDark); err != nil {
		t.Fatalf("failed to save theme: %v", err)
	}
	theme, err = store.GetTheme()
	if err != nil {
		t.Fatalf("failed to read theme: %v", err)
	}
	if theme != models.ThemeDark {
		t.Errorf("expected dark, got %q", theme)
	}
}

func TestLoadUninitialized(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("expected error loading uninitialized storage")
	}
}
