package system

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	warn bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Storage reachable", run: checkStorageReachable},
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Session pointer", run: checkSessionPointer},
		{name: "Habit ownership", run: checkHabitOwnership},
		{name: "Check-in integrity", run: checkCheckInIntegrity},
		{name: "Date formats", run: checkDateFormats},
		{name: "Backups present", run: checkBackupsPresent, warn: true},
		{name: "Clock sanity", run: func(*cli.Context) error { return checkClock() }},
	}

	hasError := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		var result int
		if err := sqliteStore.GetDB().QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// The JSON store carries its version inline and validates on load.
		return nil
	}
	version, err := sqliteStore.SchemaVersion()
	if err != nil {
		return err
	}
	if version < 1 {
		return fmt.Errorf("no migrations applied (run 'habitkit init')")
	}
	return nil
}

// checkSessionPointer flags a current-user pointer that references a
// missing account.
func checkSessionPointer(ctx *cli.Context) error {
	id, err := ctx.Store.CurrentUserID()
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	if _, err := ctx.Store.GetUser(id); err != nil {
		return fmt.Errorf("session points at missing user %s: %w", id, err)
	}
	return nil
}

func checkHabitOwnership(ctx *cli.Context) error {
	users, err := ctx.Store.GetAllUsers()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(users))
	for _, u := range users {
		known[u.ID] = true
	}

	orphaned := 0
	for _, u := range users {
		habits, err := ctx.Store.GetHabitsForUser(u.ID)
		if err != nil {
			return err
		}
		for _, h := range habits {
			if !known[h.UserID] {
				orphaned++
			}
		}
	}

	// SQLite can hold habits for user ids no longer present; scan directly.
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		var count int
		err := sqliteStore.GetDB().QueryRow(`
			SELECT COUNT(*)
			FROM habits h
			LEFT JOIN users u ON h.user_id = u.id
			WHERE u.id IS NULL`).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check habit ownership: %w", err)
		}
		orphaned += count
	}

	if orphaned > 0 {
		return fmt.Errorf("found %d habits owned by missing users", orphaned)
	}
	return nil
}

func checkCheckInIntegrity(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()

	var orphaned int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM check_ins c
		LEFT JOIN habits h ON c.habit_id = h.id
		WHERE h.id IS NULL`).Scan(&orphaned)
	if err != nil {
		return fmt.Errorf("failed to check orphaned check-ins: %w", err)
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d check-ins referencing missing habits", orphaned)
	}

	var duplicates int
	err = db.QueryRow(`
		SELECT COUNT(*)
		FROM (
			SELECT habit_id, date, COUNT(*) as cnt
			FROM check_ins
			GROUP BY habit_id, date
			HAVING cnt > 1
		)`).Scan(&duplicates)
	if err != nil {
		return fmt.Errorf("failed to check duplicate check-ins: %w", err)
	}
	if duplicates > 0 {
		return fmt.Errorf("found %d habit+date combinations with duplicate check-ins", duplicates)
	}
	return nil
}

func checkDateFormats(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		return nil
	}

	var invalid int
	err := sqliteStore.GetDB().QueryRow(`
		SELECT COUNT(*)
		FROM check_ins
		WHERE date NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'`).Scan(&invalid)
	if err != nil {
		return fmt.Errorf("failed to check check-in dates: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d check-ins with invalid date format", invalid)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
