package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/storage"
)

func setupTestRepository(t *testing.T) *Repository {
	t.Helper()

	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store)
}

func testInput(name string) HabitInput {
	return HabitInput{
		Name:        name,
		Description: "a habit",
		Frequency:   models.FrequencyDaily,
		TargetCount: 1,
	}
}

func TestCreateHabitAssignsDefaults(t *testing.T) {
	repo := setupTestRepository(t)

	habit, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	if habit.ID == "" {
		t.Error("expected a fresh id")
	}
	if habit.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
	if habit.Color != models.HabitColors[0] {
		t.Errorf("expected first palette color, got %q", habit.Color)
	}

	got, err := repo.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != "Morning run" {
		t.Errorf("habit not persisted: %+v", got)
	}
}

func TestCreateHabitCyclesPalette(t *testing.T) {
	repo := setupTestRepository(t)

	n := len(models.HabitColors) + 1
	var habits []models.Habit
	for i := 0; i < n; i++ {
		h, err := repo.CreateHabit("user-1", testInput("Habit"))
		if err != nil {
			t.Fatalf("failed to create habit %d: %v", i, err)
		}
		habits = append(habits, h)
	}

	for i, h := range habits {
		want := models.HabitColors[i%len(models.HabitColors)]
		if h.Color != want {
			t.Errorf("habit %d: expected color %q, got %q", i, want, h.Color)
		}
	}
}

func TestCreateHabitKeepsExplicitColor(t *testing.T) {
	repo := setupTestRepository(t)

	input := testInput("Morning run")
	input.Color = models.HabitColors[3]
	habit, err := repo.CreateHabit("user-1", input)
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	if habit.Color != models.HabitColors[3] {
		t.Errorf("expected explicit color to win, got %q", habit.Color)
	}
}

func TestCreateHabitValidation(t *testing.T) {
	repo := setupTestRepository(t)

	tests := []struct {
		name  string
		input HabitInput
	}{
		{"empty name", HabitInput{Frequency: models.FrequencyDaily, TargetCount: 1}},
		{"bad frequency", HabitInput{Name: "Run", Frequency: "hourly", TargetCount: 1}},
		{"zero target", HabitInput{Name: "Run", Frequency: models.FrequencyDaily}},
		{"off-palette color", HabitInput{Name: "Run", Frequency: models.FrequencyDaily, TargetCount: 1, Color: "#123456"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.CreateHabit("user-1", tt.input); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestGetHabitByName(t *testing.T) {
	repo := setupTestRepository(t)

	created, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	if _, err := repo.CreateHabit("user-2", testInput("Evening walk")); err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	got, err := repo.GetHabitByName("user-1", "Morning run")
	if err != nil {
		t.Fatalf("failed to resolve habit by name: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("expected %q, got %q", created.ID, got.ID)
	}

	// Another user's habit must not resolve.
	_, err = repo.GetHabitByName("user-1", "Evening walk")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateHabit(t *testing.T) {
	repo := setupTestRepository(t)

	habit, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	habit.Name = "Evening run"
	habit.Frequency = models.FrequencyWeekly
	habit.TargetCount = 3
	if err := repo.UpdateHabit(habit); err != nil {
		t.Fatalf("failed to update habit: %v", err)
	}

	got, err := repo.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("failed to get habit: %v", err)
	}
	if got.Name != "Evening run" || got.Frequency != models.FrequencyWeekly || got.TargetCount != 3 {
		t.Errorf("update not persisted: %+v", got)
	}
}

func TestUpdateMissingHabit(t *testing.T) {
	repo := setupTestRepository(t)

	habit := models.Habit{
		ID:          "missing",
		UserID:      "user-1",
		Name:        "Ghost",
		Frequency:   models.FrequencyDaily,
		TargetCount: 1,
		CreatedAt:   time.Now().UTC(),
	}
	err := repo.UpdateHabit(habit)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	repo := setupTestRepository(t)

	habit, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}
	for _, date := range []string{"2024-01-01", "2024-01-02"} {
		if _, err := repo.UpsertCheckIn(habit.ID, date, true, ""); err != nil {
			t.Fatalf("failed to record check-in: %v", err)
		}
	}

	if err := repo.DeleteHabit(habit.ID); err != nil {
		t.Fatalf("failed to delete habit: %v", err)
	}

	if _, err := repo.GetHabit(habit.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected habit to be gone, got %v", err)
	}
	checkIns, err := repo.ListCheckIns(habit.ID)
	if err != nil {
		t.Fatalf("failed to list check-ins: %v", err)
	}
	if len(checkIns) != 0 {
		t.Errorf("expected no orphaned check-ins, got %d", len(checkIns))
	}
}

func TestDeleteMissingHabit(t *testing.T) {
	repo := setupTestRepository(t)

	if err := repo.DeleteHabit("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertCheckInPreservesID(t *testing.T) {
	repo := setupTestRepository(t)

	habit, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	first, err := repo.UpsertCheckIn(habit.ID, "2024-01-01", true, "done")
	if err != nil {
		t.Fatalf("failed to record check-in: %v", err)
	}

	second, err := repo.UpsertCheckIn(habit.ID, "2024-01-01", false, "skipped after all")
	if err != nil {
		t.Fatalf("failed to upsert check-in: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert must preserve the original id: got %q, want %q", second.ID, first.ID)
	}

	checkIns, err := repo.ListCheckIns(habit.ID)
	if err != nil {
		t.Fatalf("failed to list check-ins: %v", err)
	}
	if len(checkIns) != 1 {
		t.Fatalf("expected exactly one check-in, got %d", len(checkIns))
	}
	if checkIns[0].Completed {
		t.Error("expected completed=false after upsert")
	}
	if checkIns[0].Note != "skipped after all" {
		t.Errorf("expected replaced note, got %q", checkIns[0].Note)
	}
}

func TestUpsertCheckInRejectsMissingHabit(t *testing.T) {
	repo := setupTestRepository(t)

	_, err := repo.UpsertCheckIn("missing", "2024-01-01", true, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpsertCheckInRejectsBadDate(t *testing.T) {
	repo := setupTestRepository(t)

	habit, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	for _, date := range []string{"01/01/2024", "2024-13-01", "yesterday", ""} {
		if _, err := repo.UpsertCheckIn(habit.ID, date, true, ""); err == nil {
			t.Errorf("expected error for date %q", date)
		}
	}
}

func TestStats(t *testing.T) {
	repo := setupTestRepository(t)

	habit, err := repo.CreateHabit("user-1", testInput("Morning run"))
	if err != nil {
		t.Fatalf("failed to create habit: %v", err)
	}

	today := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	for _, date := range []string{"2024-03-08", "2024-03-09", "2024-03-10"} {
		if _, err := repo.UpsertCheckIn(habit.ID, date, true, ""); err != nil {
			t.Fatalf("failed to record check-in: %v", err)
		}
	}

	stats, err := repo.Stats(habit.ID, today)
	if err != nil {
		t.Fatalf("failed to compute stats: %v", err)
	}
	if stats.CurrentStreak != 3 {
		t.Errorf("expected current streak 3, got %d", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", stats.LongestStreak)
	}
	if stats.TotalCheckIns != 3 {
		t.Errorf("expected 3 check-ins, got %d", stats.TotalCheckIns)
	}
}
