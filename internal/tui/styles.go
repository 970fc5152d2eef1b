package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/joannywerner/registrar/internal/ui"
	"github.com/joannywerner/registrar/internal/urls"
	"github.com/joannywerner/registrar/internal/version"
)

// Application branding constants
const (
	AppName    = "REGISTRAR"
	ProjectURL = urls.Project
	Copyright  = "©Copyright 2024 joannywerner. Todos los derechos reservados"
)

// Form texts
const (
	FormTitle    = "Registrar Producto"
	DashboardTxt = "Regresar al Dashboard"

	ProductIDLabel         = "Id Producto *"
	ProductIDPlaceholder   = "Escribe el id del producto"
	ProductIDRequired      = "El campo Id Producto es obligatorio"
	ProductNameLabel       = "Nombre del Producto *"
	ProductNamePlaceholder = "Escribe el nombre del producto"
	ProductNameRequired    = "El campo Nombre del Producto es obligatorio"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60
	MaxCardWidth     = 72
	InputWidth       = 40
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Bold(true).
			MarginBottom(1)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ui.PrimaryColor).
			Underline(true)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ui.MutedColor)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Bold(true)

	// Input border follows the field's visual state and focus
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.MutedColor).
			Padding(0, 1)

	FocusedInputStyle = InputStyle.
				BorderForeground(ui.PrimaryColor)

	InvalidInputStyle = InputStyle.
				BorderForeground(ui.ErrorColor)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(ui.ErrorColor).
			Italic(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(ui.TextColor).
			Background(ui.PrimaryColor).
			Padding(0, 3)

	FocusedButtonStyle = ButtonStyle.
				Bold(true).
				Underline(true)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(ui.MutedColor).
				Background(lipgloss.Color("#3A3A3A")).
				Padding(0, 3)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ui.WarningColor)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ui.PrimaryColor).
			Padding(1, 2)
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// BuildHeaderContent creates header content with app name, version and
// the backend the form submits to.
func BuildHeaderContent(backendURL string) string {
	left := lipgloss.NewStyle().
		Foreground(ui.TextColor).
		Bold(true).
		Render(AppName + " " + AppVersion())

	right := SubtleStyle.Render(ProjectURL)
	if backendURL != "" {
		right = SubtleStyle.Render("backend: " + backendURL)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen in the full-screen panel: header
// on top, footer pinned to the bottom, outer border around both.
func RenderApplicationContainer(header, content, footer string, terminalWidth, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight < 3 {
		terminalHeight = 3
	}

	section := lipgloss.NewStyle().
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth-4). // Leave room for outer border
		Padding(0, 1)

	styledHeader := section.BorderStyle(lipgloss.Border{Bottom: "─"}).BorderBottom(true).Render(header)
	styledFooter := section.BorderStyle(lipgloss.Border{Top: "─"}).BorderTop(true).Render(footer)

	// Content grows so the footer sits on the last rows
	bodyHeight := terminalHeight - 2 - lipgloss.Height(styledHeader) - lipgloss.Height(styledFooter)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	styledContent := lipgloss.NewStyle().
		Width(terminalWidth - 4).
		Height(bodyHeight).
		Render(content)

	inner := lipgloss.JoinVertical(lipgloss.Left, styledHeader, styledContent, styledFooter)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(ui.PrimaryColor).
		Width(terminalWidth - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// CardWidth returns the form card width for a terminal width
func CardWidth(terminalWidth int) int {
	w := terminalWidth - 8
	if w > MaxCardWidth {
		w = MaxCardWidth
	}
	if w < InputWidth+8 {
		w = InputWidth + 8
	}
	return w
}
