package tui

import (
	"darkarchiver/internal/config"
	"darkarchiver/internal/status"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from the colour palette.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Header   lipgloss.Style
	Row      lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Preview  lipgloss.Style
	Help     lipgloss.Style
	Prompt   lipgloss.Style
	Status   map[status.Level]lipgloss.Style
	Ready    lipgloss.Style
}

// NewStyles builds the styles for theme.
func NewStyles(theme config.Theme) Styles {
	fg := lipgloss.Color(theme.Foreground)
	bg := lipgloss.Color(theme.Background)
	accent := lipgloss.Color(theme.Accent)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(bg).
			Background(fg).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Row: lipgloss.NewStyle().
			Foreground(fg),
		Cursor: lipgloss.NewStyle().
			Foreground(accent).
			Background(lipgloss.Color(theme.Hover)),
		Selected: lipgloss.NewStyle().
			Foreground(fg).
			Background(lipgloss.Color(theme.Selected)),
		Preview: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Button)).
			Foreground(fg).
			Padding(0, 1).
			Width(previewWidth),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Hover)),
		Prompt: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),
		Status: map[status.Level]lipgloss.Style{
			status.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Info)),
			status.Success: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Success)),
			status.Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Warning)),
			status.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
		},
		Ready: lipgloss.NewStyle().Foreground(fg),
	}
}

// StatusLine renders msg in its level's colour.
func (s Styles) StatusLine(msg status.Message) string {
	if msg.Text == status.Ready {
		return s.Ready.Render(msg.Text)
	}
	return s.Status[msg.Level].Render(msg.Text)
}
