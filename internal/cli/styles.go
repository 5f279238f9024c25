package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitkit/internal/models"
)

// Styles is the lipgloss palette commands render with. The two variants
// mirror the stored theme preference.
type Styles struct {
	Title   lipgloss.Style
	Success lipgloss.Style
	Danger  lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
}

func StylesFor(theme models.Theme) Styles {
	if theme == models.ThemeDark {
		return Styles{
			Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
			Success: lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		}
	}
	return Styles{
		Title:   lipgloss.NewStyle().Foreground(lipgloss.Color("127")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color("26")),
	}
}
