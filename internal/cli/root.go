package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/backup"
	"github.com/julianstephens/habitkit/internal/constants"
	"github.com/julianstephens/habitkit/internal/logger"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/repository"
	"github.com/julianstephens/habitkit/internal/session"
	"github.com/julianstephens/habitkit/internal/storage"
)

// Context carries the shared dependencies into every command's Run method.
type Context struct {
	Store   storage.Provider
	Session *session.Manager
	Repo    *repository.Repository
}

// RequireUser returns the signed-in user or an actionable error. Commands
// that touch habits call this first.
func (c *Context) RequireUser() (models.User, error) {
	user, ok := c.Session.Current()
	if !ok {
		return models.User{}, fmt.Errorf("not signed in (run '%s login' or '%s register')", constants.AppName, constants.AppName)
	}
	return user, nil
}

// ResolveHabit finds a habit by name first, then by id, scoped to the
// given user.
func (c *Context) ResolveHabit(userID, ref string) (models.Habit, error) {
	habit, err := c.Repo.GetHabitByName(userID, ref)
	if err == nil {
		return habit, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return models.Habit{}, err
	}

	habit, err = c.Repo.GetHabit(ref)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Habit{}, fmt.Errorf("no habit named %q (see '%s habit list')", ref, constants.AppName)
		}
		return models.Habit{}, err
	}
	if habit.UserID != userID {
		return models.Habit{}, fmt.Errorf("no habit named %q (see '%s habit list')", ref, constants.AppName)
	}
	return habit, nil
}

// Styles returns the lipgloss palette for the stored theme preference,
// falling back to light when the preference cannot be read.
func (c *Context) Styles() Styles {
	theme, err := c.Store.GetTheme()
	if err != nil {
		return StylesFor(models.ThemeLight)
	}
	return StylesFor(theme)
}

// PerformAutomaticBackup snapshots the storage file after a mutating
// command. Failures are logged and never interrupt the user's workflow.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Today returns the current day in the local timezone; check-in dates are
// always local calendar days.
func Today() string {
	return time.Now().Format(constants.DateFormat)
}
