package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/mindcalm/internal/models"
)

type styles struct {
	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	danger      lipgloss.Style
	warning     lipgloss.Style
	notice      lipgloss.Style
	muted       lipgloss.Style
	doc         lipgloss.Style
}

func newStyles(theme models.Theme) styles {
	accent, tabBg, muted, notice := lipgloss.Color("36"), lipgloss.Color("254"), lipgloss.Color("244"), lipgloss.Color("61")
	if theme == models.ThemeDark {
		accent, tabBg, muted, notice = lipgloss.Color("86"), lipgloss.Color("236"), lipgloss.Color("240"), lipgloss.Color("141")
	}

	return styles{
		activeTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(tabBg).
			Padding(0, 1).
			Bold(true),
		inactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 1),
		danger: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true),
		notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(notice).
			Padding(0, 1),
		muted: lipgloss.NewStyle().Foreground(muted),
		doc:   lipgloss.NewStyle().Padding(1, 2),
	}
}
