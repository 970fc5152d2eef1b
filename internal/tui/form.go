package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joannywerner/registrar/internal/registration"
	"github.com/joannywerner/registrar/internal/ui"
)

// focusTarget is the form element receiving keys
type focusTarget int

const (
	focusProductID focusTarget = iota
	focusProductName
	focusSubmit
	focusCount
)

// formKeyMap defines key bindings for the form screen
type formKeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Submit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Submit}
}

// FullHelp returns keybindings for the expanded help view
func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Activate, k.Submit},
	}
}

func newFormKeyMap() formKeyMap {
	return formKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "siguiente"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "anterior"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "registrar (en el botón)"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "registrar"),
		),
	}
}

// FormModel renders the registration form and drives it through
// registration.Step. Effects come back as tea.Cmds: the create request runs
// as a command and timers are tea.Tick.
type FormModel struct {
	State   registration.State
	Config  registration.Config
	Creator registration.Creator

	IDInput   textinput.Model
	NameInput textinput.Model
	Focus     focusTarget

	Spinner      spinner.Model
	Keys         formKeyMap
	DashboardURL string
	Width        int
}

// NewFormModel creates an idle form that submits through creator
func NewFormModel(creator registration.Creator, cfg registration.Config, dashboardURL string) FormModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	idInput := textinput.New()
	idInput.Placeholder = ProductIDPlaceholder
	idInput.Prompt = ""
	idInput.Width = InputWidth
	idInput.Focus()

	nameInput := textinput.New()
	nameInput.Placeholder = ProductNamePlaceholder
	nameInput.Prompt = ""
	nameInput.Width = InputWidth

	return FormModel{
		State:        registration.NewState(),
		Config:       cfg,
		Creator:      creator,
		IDInput:      idInput,
		NameInput:    nameInput,
		Focus:        focusProductID,
		Spinner:      s,
		Keys:         newFormKeyMap(),
		DashboardURL: dashboardURL,
		Width:        MinTerminalWidth,
	}
}

// Init starts the cursor blink and the spinner
func (m FormModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.Spinner.Tick)
}

// Update handles keys, spinner ticks and lifecycle events
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case registration.Event:
		return m.apply(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Submit):
		return m.apply(registration.Submit{})

	case key.Matches(msg, m.Keys.Activate):
		if m.Focus == focusSubmit {
			return m.apply(registration.Submit{})
		}
		return m.setFocus(m.Focus + 1), textinput.Blink

	case key.Matches(msg, m.Keys.Next):
		return m.setFocus((m.Focus + 1) % focusCount), textinput.Blink

	case key.Matches(msg, m.Keys.Prev):
		return m.setFocus((m.Focus + focusCount - 1) % focusCount), textinput.Blink
	}

	var cmd tea.Cmd
	switch m.Focus {
	case focusProductID:
		pos := m.IDInput.Position()
		m.IDInput, cmd = m.IDInput.Update(msg)
		if raw := m.IDInput.Value(); raw != m.State.Fields.ProductID {
			next, cmd := m.applyWith(cmd, registration.ProductIDInput{Raw: raw})
			// a reverted edit keeps the cursor where it was
			if next.IDInput.Value() != raw {
				next.IDInput.SetCursor(pos)
			}
			return next, cmd
		}
	case focusProductName:
		pos := m.NameInput.Position()
		m.NameInput, cmd = m.NameInput.Update(msg)
		if raw := m.NameInput.Value(); raw != m.State.Fields.ProductName {
			next, cmd := m.applyWith(cmd, registration.ProductNameInput{Raw: raw})
			if next.NameInput.Value() != raw {
				next.NameInput.SetCursor(pos)
			}
			return next, cmd
		}
	}
	return m, cmd
}

func (m FormModel) setFocus(f focusTarget) FormModel {
	m.Focus = f
	m.IDInput.Blur()
	m.NameInput.Blur()
	switch f {
	case focusProductID:
		m.IDInput.Focus()
	case focusProductName:
		m.NameInput.Focus()
	}
	return m
}

func (m FormModel) apply(ev registration.Event) (FormModel, tea.Cmd) {
	return m.applyWith(nil, ev)
}

// applyWith steps the state machine and batches its effects with cmd.
// The inputs are then re-synced, which reverts rejected or frozen edits.
func (m FormModel) applyWith(cmd tea.Cmd, ev registration.Event) (FormModel, tea.Cmd) {
	next, effects := registration.Step(m.Config, m.State, ev)
	m.State = next
	m.syncInputs()

	cmds := []tea.Cmd{cmd}
	for _, eff := range effects {
		cmds = append(cmds, m.command(eff))
	}
	return m, tea.Batch(cmds...)
}

func (m *FormModel) syncInputs() {
	if m.IDInput.Value() != m.State.Fields.ProductID {
		m.IDInput.SetValue(m.State.Fields.ProductID)
	}
	if m.NameInput.Value() != m.State.Fields.ProductName {
		m.NameInput.SetValue(m.State.Fields.ProductName)
	}
}

// command turns an effect into the tea.Cmd that performs it
func (m FormModel) command(eff registration.Effect) tea.Cmd {
	switch e := eff.(type) {
	case registration.SendCreate:
		creator := m.Creator
		return func() tea.Msg {
			return registration.Perform(context.Background(), creator, e)
		}

	case registration.ScheduleTimer:
		return tea.Tick(e.After, func(time.Time) tea.Msg {
			return registration.TimerFired{Attempt: e.Attempt, Timer: e.Timer}
		})
	}
	return nil
}

// View renders the form card
func (m FormModel) View() string {
	width := CardWidth(m.Width)
	inner := width - 6 // border and padding

	var sections []string

	link := LinkStyle.Render("← " + DashboardTxt)
	if m.DashboardURL != "" {
		link += " " + SubtleStyle.Render(m.DashboardURL)
	}
	sections = append(sections, link, "", TitleStyle.Render(FormTitle))

	if alert := ui.RenderAlert(m.State.Message, inner); alert != "" {
		sections = append(sections, alert, "")
	}

	sections = append(sections,
		m.renderField(ProductIDLabel, m.IDInput, m.State.ProductIDVisual(), ProductIDRequired, m.Focus == focusProductID),
		m.renderField(ProductNameLabel, m.NameInput, m.State.ProductNameVisual(), ProductNameRequired, m.Focus == focusProductName),
		m.renderButton(),
	)

	return CardStyle.Width(width).Render(strings.Join(sections, "\n"))
}

func (m FormModel) renderField(label string, input textinput.Model, visual registration.VisualState, required string, focused bool) string {
	style := InputStyle
	switch {
	case visual == registration.VisualError:
		style = InvalidInputStyle
	case focused:
		style = FocusedInputStyle
	}

	lines := []string{LabelStyle.Render(label), style.Width(InputWidth + 2).Render(input.View())}
	if visual == registration.VisualError {
		lines = append(lines, FieldErrorStyle.Render(required))
	}
	lines = append(lines, "")
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m FormModel) renderButton() string {
	state := m.State.Button()
	switch state {
	case registration.ButtonLoading:
		return DisabledButtonStyle.Render(m.Spinner.View() + " " + state.Label())
	case registration.ButtonDisabled:
		return DisabledButtonStyle.Render(state.Label())
	}

	if m.Focus == focusSubmit {
		return FocusedButtonStyle.Render("› " + state.Label())
	}
	return ButtonStyle.Render(state.Label())
}

// HelpView renders the key help for the form
func (m FormModel) HelpView(h help.Model) string {
	return h.View(m.Keys)
}
