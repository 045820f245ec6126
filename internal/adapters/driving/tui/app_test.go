package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

func newTestPorts() *Ports {
	reader := NewMockReaderSession("copy-1", 12)
	reader.pageText = "A body in free fall accelerates toward the primary"

	return &Ports{
		Reader:      reader,
		Selection:   &MockSelectionController{},
		Annotations: &MockAnnotationService{},
		Search:      &MockSearchService{},
	}
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewReader, app.CurrentView())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_Update_CtrlCQuits(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Navigation(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	t.Run("annotations and back", func(t *testing.T) {
		app.Update(keyRunes('a'))
		assert.Equal(t, messages.ViewAnnotations, app.CurrentView())

		app.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, messages.ViewReader, app.CurrentView())
	})

	t.Run("search and back", func(t *testing.T) {
		app.Update(keyRunes('/'))
		assert.Equal(t, messages.ViewSearch, app.CurrentView())

		app.Update(tea.KeyMsg{Type: tea.KeyEsc})
		assert.Equal(t, messages.ViewReader, app.CurrentView())
	})

	t.Run("help and back", func(t *testing.T) {
		app.Update(keyRunes('?'))
		assert.Equal(t, messages.ViewHelp, app.CurrentView())
		assert.Contains(t, app.View(), "Selection:")

		app.Update(keyRunes('q'))
		assert.Equal(t, messages.ViewReader, app.CurrentView())
	})
}

func TestApp_ViewChangedMessage(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(messages.ViewChanged{View: messages.ViewSearch})

	assert.Equal(t, messages.ViewSearch, app.CurrentView())
	assert.NotNil(t, cmd)
}

func TestApp_SelectionFlow(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)

	// Load the page text into the reader view.
	_, cmd := app.Update(messages.PageTextLoaded{
		Page: 1,
		Text: "A body in free fall accelerates toward the primary",
	})
	assert.Nil(t, cmd)

	// Start a selection, extend it by two words, confirm.
	app.Update(keyRunes('v'))
	assert.Equal(t, domain.SelectionSelecting, ports.Selection.State())

	app.Update(keyRunes('w'))
	app.Update(keyRunes('w'))
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, domain.SelectionPopover, ports.Selection.State())
	require.NotNil(t, ports.Selection.Candidate())
	assert.Equal(t, "A body in", ports.Selection.Candidate().Text)
	assert.Contains(t, app.View(), "highlight")

	// Dismiss the popover.
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, domain.SelectionIdle, ports.Selection.State())
	assert.Equal(t, messages.ViewReader, app.CurrentView())
}

func TestApp_HighlightCommit(t *testing.T) {
	ports := newTestPorts()
	app, _ := NewApp(ports)
	app.SetDimensions(80, 24)
	app.Update(messages.PageTextLoaded{Page: 1, Text: "free fall is inertia"})

	app.Update(keyRunes('v'))
	app.Update(keyRunes('w'))
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, domain.SelectionPopover, ports.Selection.State())

	// x commits a highlight in a command.
	_, cmd := app.Update(keyRunes('x'))
	require.NotNil(t, cmd)
	msg := cmd()

	committed, ok := msg.(messages.AnchorCommitted)
	require.True(t, ok)
	require.NoError(t, committed.Err)
	assert.Equal(t, domain.KindHighlight, committed.Anchor.Kind)
	assert.Equal(t, domain.SelectionIdle, ports.Selection.State())
}

func TestApp_QuitKey(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.SetDimensions(80, 24)

	_, cmd := app.Update(keyRunes('q'))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_NotReadyView(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.Equal(t, "Initialising...", app.View())
}
