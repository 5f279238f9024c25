package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

// SaveCheckIn upserts by the (habit_id, date) composite key. A conflicting
// row keeps its original id; completed, note, and timestamp are replaced.
func (s *SQLiteStore) SaveCheckIn(checkIn models.CheckIn) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	completed := 0
	if checkIn.Completed {
		completed = 1
	}

	_, err := s.db.Exec(`
		INSERT INTO check_ins (id, habit_id, date, completed, note, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET
			completed = excluded.completed,
			note = excluded.note,
			timestamp = excluded.timestamp`,
		checkIn.ID, checkIn.HabitID, checkIn.Date, completed, checkIn.Note,
		checkIn.Timestamp.Format(time.RFC3339))
	return err
}

func scanCheckIn(scan func(dest ...any) error) (models.CheckIn, error) {
	var c models.CheckIn
	var completed int
	var timestamp string

	err := scan(&c.ID, &c.HabitID, &c.Date, &completed, &c.Note, &timestamp)
	if err != nil {
		return models.CheckIn{}, err
	}

	c.Completed = completed != 0
	c.Timestamp, err = time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return models.CheckIn{}, fmt.Errorf("failed to parse timestamp for check-in %s: %w", c.ID, err)
	}
	return c, nil
}

func (s *SQLiteStore) GetCheckIn(habitID, date string) (models.CheckIn, error) {
	if s.db == nil {
		return models.CheckIn{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`
		SELECT id, habit_id, date, completed, note, timestamp
		FROM check_ins WHERE habit_id = ? AND date = ?`, habitID, date)

	checkIn, err := scanCheckIn(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return models.CheckIn{}, fmt.Errorf("check-in for %s on %s: %w", habitID, date, ErrNotFound)
	}
	return checkIn, err
}

func (s *SQLiteStore) GetCheckInsForHabit(habitID string) ([]models.CheckIn, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, habit_id, date, completed, note, timestamp
		FROM check_ins WHERE habit_id = ? ORDER BY date`, habitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkIns []models.CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows.Scan)
		if err != nil {
			return nil, err
		}
		checkIns = append(checkIns, c)
	}

	return checkIns, rows.Err()
}

func (s *SQLiteStore) DeleteCheckInsForHabit(habitID string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec("DELETE FROM check_ins WHERE habit_id = ?", habitID)
	return err
}
