package views

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/tui"
)

type CalendarCmd struct {
	Habit       string `help:"Limit the calendar to one habit (name or id)."`
	Month       string `help:"Month to show, YYYY-MM (default: current)."`
	Interactive bool   `short:"i" help:"Browse months interactively."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Repo.ListHabits(user.ID)
	if err != nil {
		return err
	}
	if c.Habit != "" {
		habit, err := ctx.ResolveHabit(user.ID, c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{habit}
	}

	// Completed check-ins per date across the selected habits; the
	// interactive browser navigates over the full history.
	completed := make(map[string]int)
	for _, habit := range habits {
		checkIns, err := ctx.Repo.ListCheckIns(habit.ID)
		if err != nil {
			return err
		}
		for _, checkIn := range checkIns {
			if checkIn.Completed {
				completed[checkIn.Date]++
			}
		}
	}

	month := timeNow()
	if c.Month != "" {
		month, err = time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
	}

	if c.Interactive {
		return tui.RunCalendar(month, completed, len(habits), ctx.Styles())
	}

	fmt.Print(tui.RenderMonth(month, completed, len(habits), ctx.Styles(), cli.Today()))
	return nil
}
