package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/ohmyblood/internal/model"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	goodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	veryHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	sysStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	diaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	activeTab     = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	inactiveTab   = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	valuesStyle   = lipgloss.NewStyle().Bold(true)
	frameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
)

func classStyle(c model.Classification) lipgloss.Style {
	switch c {
	case model.VeryHigh:
		return veryHighStyle
	case model.High:
		return highStyle
	default:
		return goodStyle
	}
}

// tabs renders a segmented picker with the active label highlighted.
func tabs(labels []string, active int) string {
	out := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			out[i] = activeTab.Render(l)
		} else {
			out[i] = inactiveTab.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}
