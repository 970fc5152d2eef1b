package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joannywerner/registrar/internal/registration"
)

// RenderAlert renders the result banner for msg. A nil message renders as
// nothing. Successful results use the success style, everything else the
// error style.
func RenderAlert(msg *registration.ResultMessage, width int) string {
	if msg == nil {
		return ""
	}

	style := banner(lipgloss.Color("#B3261E"), ErrorColor)
	marker := FailureMarker
	if msg.Success {
		style = banner(lipgloss.Color("#2E7D4F"), SuccessColor)
		marker = SuccessMarker
	}

	if width > 0 {
		style = style.Width(width)
	}
	return style.Align(lipgloss.Left).Render(marker + "  " + msg.Text)
}
