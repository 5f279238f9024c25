package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/cli/auth"
	"github.com/julianstephens/habitkit/internal/cli/backups"
	"github.com/julianstephens/habitkit/internal/cli/habits"
	"github.com/julianstephens/habitkit/internal/cli/settings"
	"github.com/julianstephens/habitkit/internal/cli/system"
	"github.com/julianstephens/habitkit/internal/cli/views"
	"github.com/julianstephens/habitkit/internal/constants"
	apperrors "github.com/julianstephens/habitkit/internal/errors"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/repository"
	"github.com/julianstephens/habitkit/internal/session"
	"github.com/julianstephens/habitkit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Storage file path. A .json extension selects the JSON store; anything else uses SQLite." default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize habitkit storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`

	Register auth.RegisterCmd `cmd:"" help:"Create an account."`
	Login    auth.LoginCmd    `cmd:"" help:"Sign in."`
	Logout   auth.LogoutCmd   `cmd:"" help:"Sign out."`
	Whoami   auth.WhoamiCmd   `cmd:"" help:"Show the signed-in user."`
	Profile  auth.ProfileCmd  `cmd:"" help:"Edit your name or email."`

	Habit habits.HabitCmd `cmd:"" help:"Manage habits."`
	Mark  habits.MarkCmd  `cmd:"" help:"Record a check-in for a habit."`

	Today    views.TodayCmd    `cmd:"" help:"Show today's habits." default:"1"`
	Calendar views.CalendarCmd `cmd:"" help:"Show a monthly completion calendar."`
	Stats    views.StatsCmd    `cmd:"" help:"Show streaks and completion rates."`

	Theme  settings.ThemeCmd `cmd:"" help:"Show or set the color theme."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage storage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker with streaks and check-ins"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath, err := expandHome(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	var store storage.Provider
	if strings.HasSuffix(configPath, ".json") {
		store = storage.NewJSONStore(configPath)
	} else {
		store = storage.NewSQLiteStore(configPath)
	}

	mgr := session.NewManager(store)
	appCtx := &cli.Context{
		Store:   store,
		Session: mgr,
		Repo:    repository.New(store),
	}

	// Every command except init expects initialized storage and a
	// restored session.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if _, _, err := mgr.Restore(); err != nil {
			apperrors.Fatal(fmt.Errorf("failed to restore session: %w", err))
		}
	}

	apperrors.Fatal(ctx.Run(appCtx))
}

func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}
