package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/models"
)

func (s *SQLiteStore) AddUser(user models.User) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO users (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.PasswordHash, user.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var createdAt string

	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return models.User{}, err
	}

	u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return u, nil
}

func (s *SQLiteStore) GetUser(id string) (models.User, error) {
	if s.db == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE id = ?`, id)
	return s.scanUser(row)
}

// GetUserByEmail matches the email exactly, case included.
func (s *SQLiteStore) GetUserByEmail(email string) (models.User, error) {
	if s.db == nil {
		return models.User{}, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`
		SELECT id, email, name, password_hash, created_at
		FROM users WHERE email = ?`, email)
	return s.scanUser(row)
}

func (s *SQLiteStore) GetAllUsers() ([]models.User, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`
		SELECT id, email, name, password_hash, created_at
		FROM users ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		var createdAt string

		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for user %s: %w", u.ID, err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *SQLiteStore) UpdateUser(user models.User) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	result, err := s.db.Exec(`
		UPDATE users SET email = ?, name = ?, password_hash = ? WHERE id = ?`,
		user.Email, user.Name, user.PasswordHash, user.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("user %s: %w", user.ID, ErrNotFound)
	}
	return nil
}
