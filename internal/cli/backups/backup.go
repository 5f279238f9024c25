// Package backups holds the snapshot management commands.
package backups

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Println(ctx.Styles().Success.Render("✓ Backup created: " + filepath.Base(path)))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.Dir())
		return nil
	}

	styles := ctx.Styles()
	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		line := fmt.Sprintf("  %s  %s  (%.1f KB)",
			b.Timestamp.Format("2006-01-02 15:04"), filepath.Base(b.Path), float64(b.Size)/1024.0)
		fmt.Println(line)
	}
	fmt.Printf("\n%s\n", styles.Muted.Render("Backup directory: "+mgr.Dir()))
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Force      bool   `help:"Restore without confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	path, err := resolveBackupPath(mgr, c.BackupFile)
	if err != nil {
		return err
	}

	if !c.Force {
		styles := ctx.Styles()
		fmt.Println(styles.Warning.Render("This will replace your current data with the backup."))
		fmt.Println("A snapshot of the current data is taken first, so the restore can be undone.")
		fmt.Printf("\nRestore from: %s\n", path)

		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().Title("Continue?").Value(&confirmed),
		)).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Restore cancelled.")
			return nil
		}
	}

	// The open store must release the file before it is replaced.
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to close storage: %v\n", err)
	}

	if err := mgr.Restore(path); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Println(ctx.Styles().Success.Render("✓ Data restored."))
	return nil
}

// resolveBackupPath accepts an absolute path, a path relative to the
// working directory, or a bare filename inside the backup directory.
func resolveBackupPath(mgr *backup.Manager, ref string) (string, error) {
	if filepath.IsAbs(ref) {
		if _, err := os.Stat(ref); err != nil {
			return "", fmt.Errorf("backup file not found: %s", ref)
		}
		return ref, nil
	}

	if _, err := os.Stat(ref); err == nil {
		return filepath.Abs(ref)
	}

	inDir := filepath.Join(mgr.Dir(), ref)
	if _, err := os.Stat(inDir); err == nil {
		return inDir, nil
	}
	return "", fmt.Errorf("backup file not found: tried the current directory and %s", mgr.Dir())
}
