package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() AppModel {
	m := NewAppModel(Options{
		Creator:    &stubCreator{},
		Config:     fastConfig(),
		BackendURL: "http://localhost:4000",
	})
	model, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 40})
	return model.(AppModel)
}

func TestAppModel_WindowSize(t *testing.T) {
	m := newTestApp()

	assert.Equal(t, 90, m.Width)
	assert.Equal(t, 40, m.Height)
	assert.Equal(t, 90, m.Form.Width)
}

func TestAppModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := newTestApp().Update(msg)
		require.NotNil(t, cmd, msg.String())
		assert.Equal(t, tea.Quit(), cmd(), msg.String())
	}
}

func TestAppModel_ForwardsKeysToForm(t *testing.T) {
	model, _ := newTestApp().Update(runes("5"))

	assert.Equal(t, "5", model.(AppModel).Form.State.Fields.ProductID)
}

func TestAppModel_ToggleHelp(t *testing.T) {
	model, _ := newTestApp().Update(tea.KeyMsg{Type: tea.KeyF1})

	assert.True(t, model.(AppModel).Help.ShowAll)
}

func TestAppModel_View(t *testing.T) {
	view := newTestApp().View()

	assert.Contains(t, view, AppName)
	assert.Contains(t, view, "http://localhost:4000")
	assert.Contains(t, view, FormTitle)
	assert.Contains(t, view, Copyright)
}
