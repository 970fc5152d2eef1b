package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Payload is a box for displaying a raw request or response body.
// Used in verbose mode to show exactly what was sent to the backend.
type Payload struct {
	Title    string
	Content  string
	Width    int
	MaxLines int // Maximum lines to display (0 = unlimited)
}

// NewPayload creates a payload box with the given title
func NewPayload(title, content string) *Payload {
	return &Payload{
		Title:   title,
		Content: content,
		Width:   GetTerminalWidth(),
	}
}

// SetWidth sets the terminal width for responsive rendering
func (p *Payload) SetWidth(width int) *Payload {
	p.Width = width
	return p
}

// SetMaxLines limits the number of lines displayed
func (p *Payload) SetMaxLines(max int) *Payload {
	p.MaxLines = max
	return p
}

// Render returns the styled payload box
func (p *Payload) Render() string {
	width := p.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	lines := strings.Split(strings.TrimRight(p.Content, "\n"), "\n")
	if p.MaxLines > 0 && len(lines) > p.MaxLines {
		lines = append(lines[:p.MaxLines], noteStyle.Render("..."))
	}

	body := mutedStyle.Bold(true).Render(p.Title) + "\n" + textStyle.Render(strings.Join(lines, "\n"))
	return box(lipgloss.RoundedBorder(), MutedColor, width-2, 1).Render(body)
}

// String implements fmt.Stringer
func (p *Payload) String() string {
	return p.Render()
}
