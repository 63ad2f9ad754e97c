package cmd

import "github.com/charmbracelet/lipgloss"

// styles used for terminal output
type styles struct {
	title   lipgloss.Style
	name    lipgloss.Style
	detail  lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	changed lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{title: plain, name: plain, detail: plain, ok: plain, failed: plain, changed: plain}
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		name:    lipgloss.NewStyle().Bold(true),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		failed:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		changed: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}
