package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Palette shared by the headless output and the form.
var (
	PrimaryColor = lipgloss.Color("#7D56F4")
	SuccessColor = lipgloss.Color("#43BF6D")
	ErrorColor   = lipgloss.Color("#FF5555")
	WarningColor = lipgloss.Color("#FFA500")
	MutedColor   = lipgloss.Color("#626262")
	TextColor    = lipgloss.Color("#FFFFFF")
)

// Every box is rendered between these widths.
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
)

// One style per tone. Bold and width variants are derived where rendered.
var (
	textStyle  = lipgloss.NewStyle().Foreground(TextColor)
	mutedStyle = lipgloss.NewStyle().Foreground(MutedColor)
	okStyle    = lipgloss.NewStyle().Foreground(SuccessColor)
	busyStyle  = lipgloss.NewStyle().Foreground(WarningColor)
	failStyle  = lipgloss.NewStyle().Foreground(ErrorColor)
	noteStyle  = mutedStyle.Italic(true)
	indent     = lipgloss.NewStyle().PaddingLeft(2)
)

const (
	StepMarkerComplete = "✓"
	StepMarkerRunning  = "●"
	StepMarkerPending  = "·"
	StepMarkerSkipped  = "⊘"
	SuccessMarker      = "✓"
	FailureMarker      = "✗"
)

// GetTerminalWidth reports the stdout width clamped to the box bounds.
func GetTerminalWidth() int {
	width, _ := GetTerminalSize()
	return width
}

// GetTerminalSize reports the clamped stdout width and the raw height.
// Without a terminal it assumes 60x24.
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24
	}
	return clampWidth(width), height
}

func clampWidth(width int) int {
	return max(MinTerminalWidth, min(width, MaxContentWidth))
}

// box frames content of the given outer width in border, coloured by c.
func box(border lipgloss.Border, c lipgloss.Color, width, pad int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(border).
		BorderForeground(c).
		Width(width-2).
		Padding(0, pad)
}

// banner is the filled one-line result alert.
func banner(background, border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(TextColor).
		Background(background).
		BorderForeground(border).
		Bold(true).
		Padding(0, 2)
}
