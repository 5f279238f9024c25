package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

func (s *SQLiteStore) AddHabit(habit models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO habits (id, user_id, name, description, frequency, target_count, color, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		habit.ID, habit.UserID, habit.Name, habit.Description, string(habit.Frequency),
		habit.TargetCount, habit.Color, habit.CreatedAt.Format(time.RFC3339))
	return err
}

func scanHabit(scan func(dest ...any) error) (models.Habit, error) {
	var h models.Habit
	var frequency, createdAt string

	err := scan(&h.ID, &h.UserID, &h.Name, &h.Description, &frequency, &h.TargetCount, &h.Color, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Frequency = models.Frequency(frequency)
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	return h, nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	if s.db == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`
		SELECT id, user_id, name, description, frequency, target_count, color, created_at
		FROM habits WHERE id = ?`, id)

	habit, err := scanHabit(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return habit, err
}

func (s *SQLiteStore) GetHabitsForUser(userID string) ([]models.Habit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, user_id, name, description, frequency, target_count, color, created_at
		FROM habits WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows.Scan)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(habit models.Habit) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	result, err := s.db.Exec(`
		UPDATE habits
		SET name = ?, description = ?, frequency = ?, target_count = ?, color = ?
		WHERE id = ?`,
		habit.Name, habit.Description, string(habit.Frequency), habit.TargetCount, habit.Color, habit.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", habit.ID, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	result, err := s.db.Exec("DELETE FROM habits WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("habit %s: %w", id, ErrNotFound)
	}
	return nil
}
