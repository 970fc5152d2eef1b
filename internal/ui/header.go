package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Param is one key/value line of a header. Headers keep their params in
// the order given.
type Param struct {
	Key   string
	Value string
}

// Header represents a command header with title, command, and parameters.
// Used at the start of a headless command to show what is about to run.
type Header struct {
	Title   string  // e.g., "Registrar Producto"
	Command string  // e.g., "registrar submit"
	Params  []Param // e.g., Backend, Id Producto
	Width   int     // Terminal width for responsive rendering
}

// NewHeader creates a new header with the given values
func NewHeader(title, command string, params ...Param) *Header {
	return &Header{
		Title:   title,
		Command: command,
		Params:  params,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (h *Header) SetWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header as a string
func (h *Header) Render() string {
	width := h.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	titleLine := indent.Inherit(textStyle).Bold(true).Render(strings.ToUpper(h.Title))
	commandLine := indent.Inherit(mutedStyle).Render(h.Command)
	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, commandLine)

	if len(h.Params) > 0 {
		dividerWidth := width - 6 // Account for border and padding
		if dividerWidth < 10 {
			dividerWidth = 10
		}

		paramLines := make([]string, 0, len(h.Params))
		for _, p := range h.Params {
			paramLines = append(paramLines,
				indent.Inherit(mutedStyle).Render(p.Key+":")+" "+textStyle.Render(p.Value))
		}

		content = lipgloss.JoinVertical(lipgloss.Left,
			content,
			lipgloss.NewStyle().Foreground(PrimaryColor).Render(strings.Repeat("─", dividerWidth)),
			strings.Join(paramLines, "\n"),
		)
	}

	return box(lipgloss.RoundedBorder(), PrimaryColor, width, 0).Render(content)
}

// String implements fmt.Stringer
func (h *Header) String() string {
	return h.Render()
}
