package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tormodhaugland/treecd/internal/inspect"
	"github.com/tormodhaugland/treecd/internal/tree"
)

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	popupBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212"))

	popupTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Bold(true)

	dirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	brokenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	execStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("40"))

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

func rowStyle(link tree.LinkStatus, focused bool) lipgloss.Style {
	var s lipgloss.Style
	switch link {
	case tree.LinkOK:
		s = linkStyle
	case tree.LinkBroken:
		s = brokenStyle
	default:
		s = dirStyle
	}
	if focused {
		s = s.Background(selectedStyle.GetBackground()).Bold(true)
	}
	return s
}

func entryStyle(kind inspect.Kind) lipgloss.Style {
	switch kind {
	case inspect.KindBroken:
		return brokenStyle
	case inspect.KindLink:
		return linkStyle
	case inspect.KindExec:
		return execStyle
	default:
		return fileStyle
	}
}
