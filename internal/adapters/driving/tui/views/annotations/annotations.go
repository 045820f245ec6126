// Package annotations provides the annotation list view with windowed
// pagination.
package annotations

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
)

// defaultPerPage is the window size for the annotation list.
const defaultPerPage = 8

// View is the annotation list for the open copy, newest first.
type View struct {
	styles      *styles.Styles
	keys        *keymap.KeyMap
	annotations driving.AnnotationService
	copyID      string

	window  domain.Window[domain.Anchor]
	page    int
	cursor  int
	perPage int

	width  int
	height int
	err    error
}

// NewView creates a new annotation list view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, annotations driving.AnnotationService, copyID string) *View {
	return &View{
		styles:      s,
		keys:        keys,
		annotations: annotations,
		copyID:      copyID,
		page:        1,
		perPage:     defaultPerPage,
	}
}

// Init loads the anchors from the store.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// load returns a command that reloads the full anchor list.
func (v *View) load() tea.Cmd {
	return func() tea.Msg {
		anchors, err := v.annotations.Load(context.Background(), v.copyID)
		return messages.AnchorsLoaded{Anchors: anchors, Err: err}
	}
}

// Update handles messages for the annotation list.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnchorsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.err = nil
		}
		// A reload switches the source list: the window always starts
		// over at the first page.
		v.page = 1
		v.cursor = 0
		v.refresh()
		return v, nil

	case messages.AnchorRemoved:
		if msg.Err != nil {
			v.err = msg.Err
		}
		v.refresh()
		return v, nil
	}

	return v, nil
}

// handleKeyMsg handles navigation and deletion.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keys.Down):
		if v.cursor < len(v.window.Slice)-1 {
			v.cursor++
		}
	case keymap.Matches(keyStr, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case keymap.Matches(keyStr, v.keys.NextPage):
		v.page++
		v.cursor = 0
		v.refresh()
	case keymap.Matches(keyStr, v.keys.PrevPage):
		v.page--
		v.cursor = 0
		v.refresh()
	case keymap.Matches(keyStr, v.keys.Delete):
		if v.cursor < len(v.window.Slice) {
			return v, v.remove(v.window.Slice[v.cursor].ID)
		}
	}
	return v, nil
}

// remove deletes an anchor; the list drops it before the remote call
// resolves.
func (v *View) remove(id string) tea.Cmd {
	return func() tea.Msg {
		err := v.annotations.Remove(context.Background(), id)
		return messages.AnchorRemoved{ID: id, Err: err}
	}
}

// refresh recomputes the visible window from the service's list.
func (v *View) refresh() {
	v.window = domain.Paginate(v.annotations.All(), v.page, v.perPage)
	v.page = v.window.PageIndex
	if v.cursor >= len(v.window.Slice) && v.cursor > 0 {
		v.cursor = len(v.window.Slice) - 1
	}
}

// View renders the annotation list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Annotations · %s", v.copyID)))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n\n")
	}

	if len(v.window.Slice) == 0 {
		b.WriteString(v.styles.Muted.Render("No annotations yet.") + "\n")
	}

	for i, anchor := range v.window.Slice {
		line := fmt.Sprintf("p.%-4d %-9s %s", anchor.Page, anchor.Kind, truncate(anchor.Text, 48))
		if anchor.Kind == domain.KindComment && anchor.Body != "" {
			line += v.styles.Muted.Render("  ("+truncate(anchor.Body, 32)+")")
		}
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("window %d of %d (%d total)",
		v.window.PageIndex, v.window.TotalPages, len(v.annotations.All()))))
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("j/k move · ←/→ window · d delete · esc back"))

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// Cursor returns the cursor index (for tests).
func (v *View) Cursor() int {
	return v.cursor
}

// Window returns the current visible window (for tests).
func (v *View) Window() domain.Window[domain.Anchor] {
	return v.window
}
