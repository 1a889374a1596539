package theme

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Footer FooterTheme
	Pane   PaneTheme
	Banner lipgloss.Style
}

// FooterTheme groups styles used below the panes.
type FooterTheme struct {
	Help    lipgloss.Style
	Status  lipgloss.Style
	Loading lipgloss.Style
	Prompt  lipgloss.Style
}

// PaneTheme frames the calendar and entry panes.
type PaneTheme struct {
	Focused lipgloss.Style
	Blurred lipgloss.Style
}

// Frame returns the pane frame for the focus state.
func (p PaneTheme) Frame(focused bool) lipgloss.Style {
	if focused {
		return p.Focused
	}
	return p.Blurred
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	faint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	return Theme{
		Footer: FooterTheme{
			Help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
			Status:  faint,
			Loading: faint,
			Prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
		Pane: PaneTheme{
			Focused: frame.BorderForeground(lipgloss.Color("63")),
			Blurred: frame.BorderForeground(lipgloss.Color("240")),
		},
		Banner: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}
