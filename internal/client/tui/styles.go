package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("63")
	muted   = lipgloss.Color("245")
	danger  = lipgloss.Color("203")
	success = lipgloss.Color("42")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1).Background(accent).Foreground(lipgloss.Color("230"))
	labelStyle    = lipgloss.NewStyle().Foreground(muted)
	helpStyle     = lipgloss.NewStyle().Foreground(muted)
	errorStyle    = lipgloss.NewStyle().Foreground(danger)
	noticeStyle   = lipgloss.NewStyle().Foreground(success)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	onlineStyle   = lipgloss.NewStyle().Foreground(success)
	offlineStyle  = lipgloss.NewStyle().Foreground(danger)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
	minimizedStyle = lipgloss.NewStyle().
			Foreground(muted).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(muted).
			PaddingLeft(1)
)
