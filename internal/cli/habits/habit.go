// Package habits holds the habit management commands.
package habits

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
	"github.com/julianstephens/habitkit/internal/repository"
	"github.com/julianstephens/habitkit/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List your habits."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit an existing habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its check-in history."`
}

// frequencyOptions is the fixed select list for add/edit forms.
func frequencyOptions() []huh.Option[models.Frequency] {
	return []huh.Option[models.Frequency]{
		huh.NewOption("Daily", models.FrequencyDaily),
		huh.NewOption("Weekly", models.FrequencyWeekly),
		huh.NewOption("Monthly", models.FrequencyMonthly),
	}
}

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(models.HabitColors)+1)
	opts = append(opts, huh.NewOption("Automatic", ""))
	for _, c := range models.HabitColors {
		opts = append(opts, huh.NewOption(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("● "+c), c))
	}
	return opts
}

func validateTarget(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("target must be a number")
	}
	return validation.TargetCount(n)
}

type HabitAddCmd struct {
	Name        string `arg:"" optional:"" help:"Habit name."`
	Description string `help:"What this habit is about."`
	Frequency   string `help:"How often: daily, weekly, or monthly." default:"daily"`
	Target      int    `help:"Times per period." default:"1"`
	Color       string `help:"Display color (hex, from the palette)."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	input := repository.HabitInput{
		Name:        c.Name,
		Description: c.Description,
		Frequency:   models.Frequency(c.Frequency),
		TargetCount: c.Target,
		Color:       c.Color,
	}

	// Without a name on the command line, collect everything in a form.
	if c.Name == "" {
		target := strconv.Itoa(c.Target)
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&input.Name).
				Validate(validation.HabitName),
			huh.NewInput().
				Title("Description").
				Value(&input.Description),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencyOptions()...).
				Value(&input.Frequency),
			huh.NewInput().
				Title("Target per period").
				Value(&target).
				Validate(validateTarget),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions()...).
				Value(&input.Color),
		)).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		input.TargetCount, _ = strconv.Atoi(strings.TrimSpace(target))
	}

	if _, err := ctx.Repo.GetHabitByName(user.ID, input.Name); err == nil {
		return fmt.Errorf("habit %q already exists", input.Name)
	}

	habit, err := ctx.Repo.CreateHabit(user.ID, input)
	if err != nil {
		return err
	}

	styles := ctx.Styles()
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color)).Render("●")
	fmt.Printf("%s %s\n", swatch, styles.Success.Render(fmt.Sprintf("Added habit: %s (%s)", habit.Name, describeCadence(habit))))
	ctx.PerformAutomaticBackup()
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Repo.ListHabits(user.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Printf("No habits yet. Add one with '%s habit add'.\n", "habitkit")
		return nil
	}

	styles := ctx.Styles()
	for _, habit := range habits {
		stats, err := ctx.Repo.Stats(habit.ID, timeNow())
		if err != nil {
			return err
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(habit.Color)).Render("●")
		streak := ""
		if stats.CurrentStreak > 0 {
			streak = styles.Accent.Render(fmt.Sprintf("  %d day streak", stats.CurrentStreak))
		}
		fmt.Printf("%s %s %s%s\n", swatch, habit.Name, styles.Muted.Render("("+describeCadence(habit)+")"), streak)
		if habit.Description != "" {
			fmt.Printf("  %s\n", styles.Muted.Render(habit.Description))
		}
	}
	return nil
}

type HabitEditCmd struct {
	Habit       string `arg:"" help:"Habit name or id."`
	Name        string `help:"New name."`
	Description string `help:"New description."`
	Frequency   string `help:"New frequency: daily, weekly, or monthly."`
	Target      int    `help:"New target per period."`
	Color       string `help:"New display color (hex, from the palette)."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(user.ID, c.Habit)
	if err != nil {
		return err
	}

	flagged := c.Name != "" || c.Description != "" || c.Frequency != "" || c.Target != 0 || c.Color != ""
	if flagged {
		if c.Name != "" {
			habit.Name = c.Name
		}
		if c.Description != "" {
			habit.Description = c.Description
		}
		if c.Frequency != "" {
			habit.Frequency = models.Frequency(c.Frequency)
		}
		if c.Target != 0 {
			habit.TargetCount = c.Target
		}
		if c.Color != "" {
			habit.Color = c.Color
		}
	} else {
		target := strconv.Itoa(habit.TargetCount)
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&habit.Name).
				Validate(validation.HabitName),
			huh.NewInput().
				Title("Description").
				Value(&habit.Description),
			huh.NewSelect[models.Frequency]().
				Title("Frequency").
				Options(frequencyOptions()...).
				Value(&habit.Frequency),
			huh.NewInput().
				Title("Target per period").
				Value(&target).
				Validate(validateTarget),
			huh.NewSelect[string]().
				Title("Color").
				Options(colorOptions()[1:]...).
				Value(&habit.Color),
		)).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		habit.TargetCount, _ = strconv.Atoi(strings.TrimSpace(target))
	}

	if err := ctx.Repo.UpdateHabit(habit); err != nil {
		return err
	}

	fmt.Println(ctx.Styles().Success.Render(fmt.Sprintf("Updated habit: %s", habit.Name)))
	ctx.PerformAutomaticBackup()
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Force bool   `help:"Delete without confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	user, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	habit, err := ctx.ResolveHabit(user.ID, c.Habit)
	if err != nil {
		return err
	}

	checkIns, err := ctx.Repo.ListCheckIns(habit.ID)
	if err != nil {
		return err
	}

	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and its %d check-ins?", habit.Name, len(checkIns))).
				Value(&confirmed),
		)).WithTheme(huh.ThemeDracula())
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Repo.DeleteHabit(habit.ID); err != nil {
		return err
	}

	fmt.Println(ctx.Styles().Success.Render(fmt.Sprintf("Deleted habit: %s", habit.Name)))
	ctx.PerformAutomaticBackup()
	return nil
}

// describeCadence renders "daily" or "3x weekly" for display.
func describeCadence(habit models.Habit) string {
	if habit.TargetCount <= 1 {
		return string(habit.Frequency)
	}
	return fmt.Sprintf("%dx %s", habit.TargetCount, habit.Frequency)
}
