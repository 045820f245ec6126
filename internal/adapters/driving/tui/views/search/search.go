// Package search provides the knowledge query view.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
)

// defaultLimit caps the result count fetched from the index.
const defaultLimit = 10

// defaultPerPage is how many results one window holds.
const defaultPerPage = 5

// View is the knowledge search view for the open copy.
type View struct {
	styles *styles.Styles
	keys   *keymap.KeyMap
	search driving.SearchService
	copyID string

	input     textinput.Model
	results   []domain.SearchResult
	window    domain.Window[domain.SearchResult]
	page      int
	perPage   int
	lastQuery string
	searching bool

	width  int
	height int
	err    error
}

// NewView creates a new search view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, search driving.SearchService, copyID string) *View {
	input := textinput.New()
	input.Placeholder = "Search your annotations..."
	input.CharLimit = 200
	input.Focus()

	return &View{
		styles:  s,
		keys:    keys,
		search:  search,
		copyID:  copyID,
		input:   input,
		page:    1,
		perPage: defaultPerPage,
	}
}

// Init starts the cursor blink.
func (v *View) Init() tea.Cmd {
	return textinput.Blink
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// query returns a command that runs the search for the typed text.
func (v *View) query(text string) tea.Cmd {
	return func() tea.Msg {
		results, err := v.search.Search(context.Background(), text, domain.SearchOptions{
			CopyID: v.copyID,
			Limit:  defaultLimit,
		})
		return messages.SearchCompleted{Query: text, Results: results, Err: err}
	}
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		return v.handleCompleted(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg submits queries, turns result windows, and forwards
// everything else to the input field. Only pgup/pgdown turn windows
// here; arrows and letters belong to the input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if keymap.Matches(msg.String(), v.keys.Select) {
		text := strings.TrimSpace(v.input.Value())
		v.searching = true
		v.lastQuery = text
		return v, v.query(text)
	}

	switch msg.Type {
	case tea.KeyPgDown:
		v.page++
		v.refresh()
		return v, nil
	case tea.KeyPgUp:
		v.page--
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleCompleted renders a response only if it still matches the last
// submitted query. Out-of-order responses are dropped silently.
func (v *View) handleCompleted(msg messages.SearchCompleted) (*View, tea.Cmd) {
	if errors.Is(msg.Err, domain.ErrStaleResponse) || msg.Query != v.lastQuery {
		return v, nil
	}

	v.searching = false
	if msg.Err != nil {
		v.err = msg.Err
		return v, nil
	}
	v.err = nil
	v.results = msg.Results
	// A fresh result set always opens on the first window.
	v.page = 1
	v.refresh()
	return v, nil
}

// refresh recomputes the visible window after the result set or the
// requested window changes.
func (v *View) refresh() {
	v.window = domain.Paginate(v.results, v.page, v.perPage)
	v.page = v.window.PageIndex
}

// View renders the search view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Knowledge Search"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
	case v.searching:
		b.WriteString(v.styles.Muted.Render("Searching..."))
	case v.lastQuery != "" && len(v.results) == 0:
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("No results for %q.", v.lastQuery)))
	default:
		for _, r := range v.window.Slice {
			b.WriteString(fmt.Sprintf("%s p.%-4d %s\n",
				v.styles.Selected.Render(fmt.Sprintf("%.2f", r.Score)),
				r.Page,
				r.Kind))
			b.WriteString("  " + v.styles.Muted.Render(r.Excerpt) + "\n")
		}
		if len(v.results) > 0 {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(
				fmt.Sprintf("window %d of %d", v.window.PageIndex, v.window.TotalPages)))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("enter search · pgup/pgdn window · esc back"))

	return b.String()
}

// Results returns the full result set (for tests).
func (v *View) Results() []domain.SearchResult {
	return v.results
}

// Window returns the visible result window (for tests).
func (v *View) Window() domain.Window[domain.SearchResult] {
	return v.window
}

// LastQuery returns the last submitted query (for tests).
func (v *View) LastQuery() string {
	return v.lastQuery
}
