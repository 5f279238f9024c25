package habits

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
)

// timeNow is swappable in tests.
var timeNow = time.Now

type MarkCmd struct {
	Habit  string `arg:"" help:"Habit name or id."`
	Date   string `help:"Day to record, YYYY-MM-DD (default: today)."`
	Note   string `help:"Optional note for the day."`
	Missed bool   `help:"Record the day as missed instead of completed."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(user.ID, c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = cli.Today()
	}

	checkIn, err := ctx.Repo.UpsertCheckIn(habit.ID, date, !c.Missed, c.Note)
	if err != nil {
		return err
	}

	styles := ctx.Styles()
	if checkIn.Completed {
		fmt.Println(styles.Success.Render(fmt.Sprintf("✓ %s marked done for %s", habit.Name, date)))
	} else {
		fmt.Println(styles.Warning.Render(fmt.Sprintf("✗ %s marked missed for %s", habit.Name, date)))
	}

	stats, err := ctx.Repo.Stats(habit.ID, timeNow())
	if err != nil {
		return err
	}
	if stats.CurrentStreak > 1 {
		fmt.Println(styles.Accent.Render(fmt.Sprintf("  %d days in a row!", stats.CurrentStreak)))
	}

	ctx.PerformAutomaticBackup()
	return nil
}
