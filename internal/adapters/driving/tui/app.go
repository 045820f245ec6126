package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/views/annotations"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/views/reader"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keys holds the key bindings shared by all views.
	keys *keymap.KeyMap

	// readerView is the page reading and selection view.
	readerView *reader.View

	// annotationsView is the annotation list view.
	annotationsView *annotations.View

	// searchView is the knowledge query view.
	searchView *search.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	keys := keymap.DefaultKeyMap()
	copyID := ports.Reader.CopyID()

	return &App{
		ports:           ports,
		ctx:             context.Background(),
		styles:          s,
		keys:            keys,
		readerView:      reader.NewView(s, keys, ports.Reader, ports.Selection),
		annotationsView: annotations.NewView(s, keys, ports.Annotations, copyID),
		searchView:      search.NewView(s, keys, ports.Search, copyID),
		currentView:     messages.ViewReader,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("margin - "+a.ports.Reader.CopyID()),
		a.readerView.Init(),
	)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.readerView.SetDimensions(msg.Width, msg.Height)
		a.annotationsView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.switchView(msg.View)

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view.
	switch a.currentView {
	case messages.ViewReader:
		a.readerView, cmd = a.readerView.Update(msg)
	case messages.ViewAnnotations:
		a.annotationsView, cmd = a.annotationsView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages.
	}

	return a, cmd
}

// handleKeyMsg routes key presses. Views with text entry or an active
// selection get keys before the global bindings.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	keyStr := msg.String()

	// Global quit with ctrl+c.
	if keyStr == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewReader:
		if a.readerView.Captures() {
			a.readerView, cmd = a.readerView.Update(msg)
			return a, cmd
		}
		switch {
		case keymap.Matches(keyStr, a.keys.Quit):
			return a, tea.Quit
		case keymap.Matches(keyStr, a.keys.Annotations):
			return a.switchView(messages.ViewAnnotations)
		case keymap.Matches(keyStr, a.keys.Search):
			return a.switchView(messages.ViewSearch)
		case keymap.Matches(keyStr, a.keys.Help):
			return a.switchView(messages.ViewHelp)
		}
		a.readerView, cmd = a.readerView.Update(msg)
		return a, cmd

	case messages.ViewAnnotations:
		switch {
		case keymap.Matches(keyStr, a.keys.Back):
			return a.switchView(messages.ViewReader)
		case keymap.Matches(keyStr, a.keys.Quit):
			return a, tea.Quit
		}
		a.annotationsView, cmd = a.annotationsView.Update(msg)
		return a, cmd

	case messages.ViewSearch:
		if keymap.Matches(keyStr, a.keys.Back) {
			return a.switchView(messages.ViewReader)
		}
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(keyStr, a.keys.Back) || keymap.Matches(keyStr, a.keys.Quit) {
			return a.switchView(messages.ViewReader)
		}
		return a, nil
	}

	return a, nil
}

// switchView activates a view and runs its initialisation command.
func (a *App) switchView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view

	switch view {
	case messages.ViewAnnotations:
		return a, a.annotationsView.Init()
	case messages.ViewSearch:
		return a, a.searchView.Init()
	case messages.ViewReader, messages.ViewHelp:
		// No refresh needed.
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewReader:
		return a.readerView.View()
	case messages.ViewAnnotations:
		return a.annotationsView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.readerView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Reading:
  ←/→, h/l    Turn pages
  +/-         Zoom in / out
  v           Start a selection
  a           Annotation list
  /           Knowledge search
  q, ctrl+c   Quit

Selection:
  w/b         Extend / shrink by one word
  enter       Confirm selection
  c           Comment the selection
  x           Highlight the selection
  esc         Dismiss

Annotations:
  j/k         Move cursor
  ←/→         Turn list windows
  d           Delete

[esc] back to reading`
}

// Run starts the TUI application and flushes reading progress on exit.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()

	if closeErr := a.ports.Reader.Close(a.ctx); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.readerView.SetDimensions(width, height)
	a.annotationsView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
}
