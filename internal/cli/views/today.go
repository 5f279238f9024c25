// Package views holds the read-only dashboard commands: today, calendar,
// and stats.
package views

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/cli"
)

// timeNow is swappable in tests.
var timeNow = time.Now

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Repo.ListHabits(user.ID)
	if err != nil {
		return err
	}

	styles := ctx.Styles()
	today := cli.Today()
	fmt.Println(styles.Title.Render(fmt.Sprintf("Today, %s", timeNow().Format("Monday, January 2"))))
	fmt.Println()

	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitkit habit add'.")
		return nil
	}

	done := 0
	for _, habit := range habits {
		marker := styles.Muted.Render("[ ]")
		note := ""
		if checkIn, err := ctx.Store.GetCheckIn(habit.ID, today); err == nil {
			if checkIn.Completed {
				marker = styles.Success.Render("[✓]")
				done++
			} else {
				marker = styles.Danger.Render("[✗]")
			}
			if checkIn.Note != "" {
				note = styles.Muted.Render("  " + checkIn.Note)
			}
		}

		stats, err := ctx.Repo.Stats(habit.ID, timeNow())
		if err != nil {
			return err
		}
		streak := ""
		if stats.CurrentStreak > 0 {
			streak = styles.Accent.Render(fmt.Sprintf("  %d🔥", stats.CurrentStreak))
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color)).Render("●")
		fmt.Printf("%s %s %s%s%s\n", marker, swatch, habit.Name, streak, note)
	}

	fmt.Println()
	fmt.Println(styles.Muted.Render(fmt.Sprintf("Completed: %d/%d", done, len(habits))))
	return nil
}
