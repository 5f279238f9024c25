package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkit/internal/migration"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/migrations"
)

// SQLiteStore is the default storage provider, backed by a single database
// file with an embedded, forward-only migration set.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitkit init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB exposes the underlying handle for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) migrationFS() (fs.FS, error) {
	return fs.Sub(migrations.FS, "sqlite")
}

func (s *SQLiteStore) runMigrations() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	if _, err := runner.Apply(); err != nil {
		return err
	}
	return nil
}

// validateSchemaVersion refuses to operate on a database whose schema is
// ahead of this binary, and applies pending migrations when it is behind.
func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := s.migrationFS()
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	current, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.LatestVersion()
	if err != nil {
		return err
	}

	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d) - please upgrade the application", current, latest)
	}
	if current < latest {
		if _, err := runner.Apply(); err != nil {
			return err
		}
	}
	return nil
}

// SchemaVersion reports the applied schema version, used by diagnostics.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not loaded")
	}
	subFS, err := s.migrationFS()
	if err != nil {
		return 0, err
	}
	return migration.NewRunner(s.db, subFS).CurrentVersion()
}

// Session pointer

func (s *SQLiteStore) CurrentUserID() (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	var userID string
	err := s.db.QueryRow("SELECT user_id FROM session WHERE id = 1").Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *SQLiteStore) SetCurrentUserID(id string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO session (id, user_id) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id`, id)
	return err
}

func (s *SQLiteStore) ClearCurrentUser() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec("DELETE FROM session WHERE id = 1")
	return err
}

// Theme preference

func (s *SQLiteStore) GetTheme() (models.Theme, error) {
	if s.db == nil {
		return "", fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key = 'theme'").Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ThemeLight, nil
	}
	if err != nil {
		return "", err
	}

	theme := models.Theme(value)
	if !theme.Valid() {
		return models.ThemeLight, nil
	}
	return theme, nil
}

func (s *SQLiteStore) SaveTheme(theme models.Theme) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value) VALUES ('theme', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(theme))
	return err
}
