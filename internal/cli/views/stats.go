package views

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

type StatsCmd struct {
	Habit string `help:"Show stats for one habit only (name or id)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
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
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with 'habitkit habit add'.")
		return nil
	}

	styles := ctx.Styles()
	for i, habit := range habits {
		stats, err := ctx.Repo.Stats(habit.ID, timeNow())
		if err != nil {
			return err
		}

		if i > 0 {
			fmt.Println()
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color)).Render("●")
		fmt.Printf("%s %s\n", swatch, styles.Title.Render(habit.Name))
		fmt.Printf("  Current streak:  %s\n", styles.Accent.Render(fmt.Sprintf("%d days", stats.CurrentStreak)))
		fmt.Printf("  Longest streak:  %d days\n", stats.LongestStreak)
		fmt.Printf("  Total check-ins: %d\n", stats.TotalCheckIns)
		fmt.Printf("  Completion rate: %s\n", renderRate(stats.CompletionRate, styles))
	}
	return nil
}

func renderRate(rate float64, styles cli.Styles) string {
	text := fmt.Sprintf("%.0f%%", rate)
	switch {
	case rate >= 80:
		return styles.Success.Render(text)
	case rate >= 50:
		return styles.Warning.Render(text)
	default:
		return styles.Danger.Render(text)
	}
}
