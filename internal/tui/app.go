package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joannywerner/registrar/internal/registration"
	"github.com/joannywerner/registrar/internal/ui"
)

// Options configures the page shell
type Options struct {
	Creator      registration.Creator
	Config       registration.Config
	BackendURL   string // shown in the header
	DashboardURL string // shown next to the back link
}

// appKeyMap defines the global key bindings
type appKeyMap struct {
	Help key.Binding
	Quit key.Binding
}

// AppModel is the page shell: header, the form, and the footer with help
// and copyright. It holds no form logic of its own.
type AppModel struct {
	Form       FormModel
	BackendURL string

	Width  int
	Height int

	Help help.Model
	Keys appKeyMap
}

// NewAppModel creates the shell around a fresh form
func NewAppModel(opts Options) AppModel {
	width, height := ui.GetTerminalSize()

	form := NewFormModel(opts.Creator, opts.Config, opts.DashboardURL)
	form.Width = width

	return AppModel{
		Form:       form,
		BackendURL: opts.BackendURL,
		Width:      width,
		Height:     height,
		Help:       help.New(),
		Keys: appKeyMap{
			Help: key.NewBinding(
				key.WithKeys("f1"),
				key.WithHelp("f1", "ayuda"),
			),
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c", "esc"),
				key.WithHelp("esc", "salir"),
			),
		},
	}
}

// Init initializes the form
func (m AppModel) Init() tea.Cmd {
	return m.Form.Init()
}

// Update handles global keys and forwards everything else to the form
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Form.Width = msg.Width
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Help):
			m.Help.ShowAll = !m.Help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.Form, cmd = m.Form.Update(msg)
	return m, cmd
}

// View renders the full screen
func (m AppModel) View() string {
	helpLine := lipgloss.JoinHorizontal(lipgloss.Top,
		m.Form.HelpView(m.Help), "  ", m.Help.ShortHelpView([]key.Binding{m.Keys.Help, m.Keys.Quit}))
	footer := lipgloss.JoinVertical(lipgloss.Left, helpLine, SubtleStyle.Render(Copyright))

	return RenderApplicationContainer(BuildHeaderContent(m.BackendURL), m.Form.View(), footer, m.Width, m.Height)
}

// Run starts the form in the alternate screen and blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
