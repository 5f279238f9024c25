// Package backup manages rotating snapshots of the storage file. Snapshots
// live in a backups/ directory next to the storage file and are named by
// creation time; only the most recent constants.MaxBackups are kept.
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitkit/internal/constants"
)

// Info describes one snapshot on disk.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager creates, lists, and restores snapshots for a single storage file.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

// NewManager builds a manager for the given storage file. The snapshot
// suffix follows the file's own extension, so a JSON store gets .json
// snapshots and a SQLite store gets .db ones.
func NewManager(storePath string) *Manager {
	suffix := filepath.Ext(storePath)
	if suffix == "" {
		suffix = constants.BackupFileSuffix
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), constants.BackupDirName),
		suffix:    suffix,
	}
}

// Dir returns the snapshot directory path.
func (m *Manager) Dir() string {
	return m.backupDir
}

// Create writes a new snapshot and prunes old ones past the retention
// limit. It returns the path of the snapshot it wrote.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

func (m *Manager) create(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage file does not exist: %s", m.storePath)
	}

	path, err := m.uniquePath()
	if err != nil {
		return "", err
	}

	if m.isSQLite() {
		err = m.snapshotSQLite(path)
	} else {
		err = copyFile(m.storePath, path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}

	if !skipRotation {
		if err := m.rotate(); err != nil {
			// A failed rotation must not lose the backup that just
			// succeeded.
			fmt.Fprintf(os.Stderr, "warning: failed to rotate old backups: %v\n", err)
		}
	}

	return path, nil
}

// uniquePath picks a snapshot filename from the current time, extending the
// timestamp with seconds and then a counter when snapshots collide.
func (m *Manager) uniquePath() (string, error) {
	now := time.Now()

	path := m.pathFor(now.Format("20060102-1504"))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path, nil
	}

	stamp := now.Format("20060102-150405")
	path = m.pathFor(stamp)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = m.pathFor(fmt.Sprintf("%s-%d", stamp, counter))
	}
}

func (m *Manager) pathFor(stamp string) string {
	name := constants.BackupFilePrefix + stamp + m.suffix
	return filepath.Join(m.backupDir, name)
}

func (m *Manager) isSQLite() bool {
	return m.suffix == constants.BackupFileSuffix
}

// snapshotSQLite writes a clean copy via VACUUM INTO, which is safe while
// other connections hold the database open. Older SQLite builds without
// VACUUM INTO fall back to a plain file copy.
func (m *Manager) snapshotSQLite(destPath string) error {
	src, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// List returns the snapshots on disk, newest first. Files in the snapshot
// directory that do not match the naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)
		timestamp, ok := parseStamp(stamp)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		backups = append(backups, Info{Path: path, Timestamp: timestamp, Size: info.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp reads the timestamp out of a snapshot filename, tolerating the
// optional seconds component and a trailing collision counter.
func parseStamp(stamp string) (time.Time, bool) {
	// Strip a collision counter: the time components are always 4 or 6
	// digits, the counter is anything else.
	parts := strings.Split(stamp, "-")
	if len(parts) > 2 {
		last := parts[len(parts)-1]
		if len(last) != 4 && len(last) != 6 && isDigits(last) {
			stamp = strings.Join(parts[:len(parts)-1], "-")
		}
	}

	for _, layout := range []string{"20060102-1504", "20060102-150405"} {
		if t, err := time.Parse(layout, stamp); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the storage file with a snapshot. The current file is
// snapshotted first so a bad restore can be undone, and the replacement is
// an atomic rename. The caller must close any open store before restoring.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if m.isSQLite() {
		if err := m.verify(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		if _, err := m.create(true); err != nil {
			return fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore storage file: %w", err)
	}
	return nil
}

// verify opens a snapshot read-only and checks it answers a catalog query.
func (m *Manager) verify(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
