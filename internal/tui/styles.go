package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rezonia/invoice-client/internal/client"
)

var (
	primaryColor = lipgloss.Color("#0d6efd")
	successColor = lipgloss.Color("#198754")
	warningColor = lipgloss.Color("#ffc107")
	dangerColor  = lipgloss.Color("#dc3545")
	mutedColor   = lipgloss.Color("#6c757d")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primaryColor).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().Foreground(mutedColor)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(primaryColor).
			Padding(0, 1)

	disabledButtonStyle = buttonStyle.
				Background(mutedColor)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// noticeStyle colors a notice by severity
func noticeStyle(s client.Severity) lipgloss.Style {
	color := primaryColor
	switch s {
	case client.SeveritySuccess:
		color = successColor
	case client.SeverityWarning:
		color = warningColor
	case client.SeverityDanger:
		color = dangerColor
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1)
}
