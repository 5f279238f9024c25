package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitkit/internal/cli"
	"github.com/julianstephens/habitkit/internal/models"
)

func TestRenderMonthLayout(t *testing.T) {
	// March 2024 starts on a Friday and has 31 days.
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := RenderMonth(month, nil, 0, cli.StylesFor(models.ThemeLight), "")

	if !strings.Contains(out, "March 2024") {
		t.Error("expected month header")
	}
	if !strings.Contains(out, "Su  Mo  Tu  We  Th  Fr  Sa") {
		t.Error("expected weekday header")
	}

	lines := strings.Split(out, "\n")
	if len(lines) < 3 {
		t.Fatalf("expected a grid, got %q", out)
	}
	// The first week row has the leading blanks for Sun-Thu before the 1st.
	firstWeek := lines[2]
	if !strings.HasPrefix(firstWeek, strings.Repeat("    ", 5)) {
		t.Errorf("expected 5 leading blank cells, got %q", firstWeek)
	}
	if !strings.Contains(out, "31") {
		t.Error("expected the last day of the month")
	}
}

func TestRenderMonthMarksCompletions(t *testing.T) {
	month := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	completed := map[string]int{
		"2024-03-05": 2, // all habits done
		"2024-03-06": 1, // partial
	}

	plain := RenderMonth(month, nil, 2, cli.StylesFor(models.ThemeDark), "")
	marked := RenderMonth(month, completed, 2, cli.StylesFor(models.ThemeDark), "")
	if plain == marked {
		t.Error("expected completed days to render differently")
	}
}

func TestCalendarNavigation(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m := calendarModel{month: start, styles: cli.StylesFor(models.ThemeLight)}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(calendarModel)
	if m.month.Month() != time.February {
		t.Errorf("expected February after left, got %s", m.month.Month())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(calendarModel)
	if m.month.Month() != time.March {
		t.Errorf("expected March after right, got %s", m.month.Month())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
