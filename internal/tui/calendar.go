// Package tui holds the interactive calendar browser.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/constants"
)

// calendarModel browses months of check-in history. Left/right move a
// month at a time, t jumps back to the current month, q quits.
type calendarModel struct {
	month      time.Time
	completed  map[string]int
	habitCount int
	styles     cli.Styles
}

func (m calendarModel) Init() tea.Cmd {
	return nil
}

func (m calendarModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "left", "h":
			m.month = m.month.AddDate(0, -1, 0)
		case "right", "l":
			m.month = m.month.AddDate(0, 1, 0)
		case "t":
			m.month = time.Now()
		}
	}
	return m, nil
}

func (m calendarModel) View() string {
	var b strings.Builder
	b.WriteString(RenderMonth(m.month, m.completed, m.habitCount, m.styles, time.Now().Format(constants.DateFormat)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("←/→ change month · t today · q quit"))
	b.WriteString("\n")
	return b.String()
}

// RunCalendar starts the interactive browser at the given month.
func RunCalendar(month time.Time, completed map[string]int, habitCount int, styles cli.Styles) error {
	model := calendarModel{
		month:      month,
		completed:  completed,
		habitCount: habitCount,
		styles:     styles,
	}
	_, err := tea.NewProgram(model).Run()
	return err
}

// RenderMonth draws one month as a Sunday-first grid. Days where every
// tracked habit was completed get the success color, partially completed
// days the warning color, and today is underlined.
func RenderMonth(month time.Time, completed map[string]int, habitCount int, styles cli.Styles, today string) string {
	var b strings.Builder

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	b.WriteString(styles.Title.Render(first.Format("January 2006")))
	b.WriteString("\n Su  Mo  Tu  We  Th  Fr  Sa\n")

	b.WriteString(strings.Repeat("    ", int(first.Weekday())))

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
		key := date.Format(constants.DateFormat)

		cell := fmt.Sprintf("%3d", day)
		switch {
		case habitCount > 0 && completed[key] >= habitCount:
			cell = styles.Success.Render(cell)
		case completed[key] > 0:
			cell = styles.Warning.Render(cell)
		default:
			cell = styles.Muted.Render(cell)
		}
		if key == today {
			cell = lipgloss.NewStyle().Underline(true).Render(cell)
		}
		b.WriteString(cell)
		b.WriteString(" ")

		if date.Weekday() == time.Saturday {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
