// Package reader provides the page reading and selection view. It is
// the capture layer for the selection pipeline: cursor-driven word
// ranges stand in for pointer-drag selections, with synthetic viewport
// geometry derived from the text layout.
package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/ports/driving"
)

// Synthetic glyph metrics for viewport geometry. The terminal has no
// real pixel layout; a monospace cell grid scaled by the zoom factor
// stands in for it.
const (
	glyphWidth  = 8.0
	glyphHeight = 16.0
)

// View is the reading view for one document copy.
type View struct {
	styles    *styles.Styles
	keys      *keymap.KeyMap
	reader    driving.ReaderSession
	selection driving.SelectionController

	pageText string
	words    []word

	// selecting tracks the cursor-driven word range.
	selecting bool
	selStart  int
	selEnd    int // inclusive

	// authoring holds the comment input when the modal is open.
	authoring bool
	input     textinput.Model

	width  int
	height int
	err    error
	notice string
}

// word is one selectable token with its rune offset in the page text.
type word struct {
	text   string
	offset int
}

// NewView creates a new reader view.
func NewView(s *styles.Styles, keys *keymap.KeyMap, reader driving.ReaderSession, selection driving.SelectionController) *View {
	input := textinput.New()
	input.Placeholder = "Write a note..."
	input.CharLimit = 500

	return &View{
		styles:    s,
		keys:      keys,
		reader:    reader,
		selection: selection,
		input:     input,
	}
}

// Init loads the first page.
func (v *View) Init() tea.Cmd {
	return v.loadPage()
}

// SetDimensions sets the terminal dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// loadPage returns a command that loads the current page's text.
func (v *View) loadPage() tea.Cmd {
	return func() tea.Msg {
		text, err := v.reader.PageText(context.Background())
		return messages.PageTextLoaded{
			Page: v.reader.CurrentPage(),
			Text: text,
			Err:  err,
		}
	}
}

// Update handles messages for the reader view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.PageTextLoaded:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.setPageText(msg.Text)
		return v, nil

	case messages.AnchorCommitted:
		return v.handleCommitted(msg)
	}

	return v, nil
}

// handleKeyMsg routes keys by the current selection phase.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.authoring {
		return v.handleAuthoringKey(msg)
	}

	keyStr := msg.String()
	state := v.selection.State()

	if state == domain.SelectionPopover {
		return v.handlePopoverKey(keyStr)
	}
	if v.selecting {
		return v.handleSelectionKey(keyStr)
	}

	switch {
	case keymap.Matches(keyStr, v.keys.NextPage):
		return v.navigate(v.reader.CurrentPage() + 1)
	case keymap.Matches(keyStr, v.keys.PrevPage):
		return v.navigate(v.reader.CurrentPage() - 1)
	case keymap.Matches(keyStr, v.keys.ZoomIn):
		v.reader.SetZoom(v.reader.Zoom() + 0.25)
	case keymap.Matches(keyStr, v.keys.ZoomOut):
		v.reader.SetZoom(v.reader.Zoom() - 0.25)
	case keymap.Matches(keyStr, v.keys.SelectMode):
		if len(v.words) > 0 {
			v.selection.PointerDown()
			v.selecting = true
			v.selStart = 0
			v.selEnd = 0
			v.notice = ""
		}
	}
	return v, nil
}

// handleSelectionKey adjusts the word range or releases the selection.
func (v *View) handleSelectionKey(keyStr string) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(keyStr, v.keys.Extend):
		if v.selEnd < len(v.words)-1 {
			v.selEnd++
		}
	case keymap.Matches(keyStr, v.keys.Shrink):
		if v.selEnd > v.selStart {
			v.selEnd--
		}
	case keymap.Matches(keyStr, v.keys.Down):
		if v.selStart < len(v.words)-1 {
			v.selStart++
			if v.selEnd < v.selStart {
				v.selEnd = v.selStart
			}
		}
	case keymap.Matches(keyStr, v.keys.Up):
		if v.selStart > 0 {
			v.selStart--
		}
	case keymap.Matches(keyStr, v.keys.Select):
		v.selecting = false
		if !v.selection.PointerUp(v.rawSelection()) {
			v.notice = "Selection rejected"
		}
	case keymap.Matches(keyStr, v.keys.Back):
		v.selecting = false
		v.selection.PointerUp(domain.RawSelection{InsideViewer: false})
	}
	return v, nil
}

// handlePopoverKey handles the annotation popover.
func (v *View) handlePopoverKey(keyStr string) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(keyStr, v.keys.Comment):
		if err := v.selection.RequestAuthoring(); err != nil {
			v.err = err
			return v, nil
		}
		v.authoring = true
		v.input.SetValue("")
		v.input.Focus()
		return v, textinput.Blink
	case keymap.Matches(keyStr, v.keys.Highlight):
		if err := v.selection.RequestAuthoring(); err != nil {
			v.err = err
			return v, nil
		}
		return v, v.commit(domain.KindHighlight, "", domain.ColorYellow)
	case keymap.Matches(keyStr, v.keys.Back):
		v.selection.ClickOutside()
	}
	return v, nil
}

// handleAuthoringKey handles the comment authoring modal.
func (v *View) handleAuthoringKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return v, v.commit(domain.KindComment, v.input.Value(), "")
	case "esc":
		v.authoring = false
		v.selection.CancelAuthoring()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// commit returns a command that persists the candidate as an anchor.
func (v *View) commit(kind domain.AnchorKind, body, color string) tea.Cmd {
	return func() tea.Msg {
		anchor, err := v.selection.Commit(context.Background(), kind, body, color)
		return messages.AnchorCommitted{Anchor: anchor, Err: err}
	}
}

// handleCommitted closes the authoring surface or keeps it open so the
// typed text survives a retry.
func (v *View) handleCommitted(msg messages.AnchorCommitted) (*View, tea.Cmd) {
	if msg.Err != nil {
		// Empty body and remote failures keep the candidate; the
		// modal stays open with the draft intact.
		v.err = msg.Err
		return v, nil
	}
	v.authoring = false
	v.err = nil
	v.notice = fmt.Sprintf("Saved %s on page %d", msg.Anchor.Kind, msg.Anchor.Page)
	return v, nil
}

// navigate turns the page and reloads its text.
func (v *View) navigate(page int) (*View, tea.Cmd) {
	v.selecting = false
	v.authoring = false
	v.reader.GoToPage(page)
	return v, v.loadPage()
}

// setPageText splits the page into selectable words.
func (v *View) setPageText(text string) {
	v.pageText = text
	v.words = nil
	v.selecting = false

	offset := 0
	for _, field := range strings.Fields(text) {
		idx := strings.Index(text[offset:], field)
		if idx >= 0 {
			offset += idx
		}
		v.words = append(v.words, word{text: field, offset: offset})
		offset += len(field)
	}
}

// rawSelection builds the raw selection for the current word range,
// with synthetic viewport geometry from the glyph grid.
func (v *View) rawSelection() domain.RawSelection {
	if v.selStart >= len(v.words) {
		return domain.RawSelection{InsideViewer: false}
	}
	end := v.selEnd
	if end >= len(v.words) {
		end = len(v.words) - 1
	}

	parts := make([]string, 0, end-v.selStart+1)
	for i := v.selStart; i <= end; i++ {
		parts = append(parts, v.words[i].text)
	}

	zoom := v.reader.Zoom()
	cols := v.textWidth()
	startOffset := v.words[v.selStart].offset
	endOffset := v.words[end].offset + len(v.words[end].text)
	startLine := startOffset / cols
	endLine := endOffset / cols

	return domain.RawSelection{
		Text: strings.Join(parts, " "),
		Bounds: domain.Rect{
			Left:   float64(startOffset%cols) * glyphWidth * zoom,
			Top:    float64(startLine) * glyphHeight * zoom,
			Width:  float64(endOffset-startOffset) * glyphWidth * zoom,
			Height: float64(endLine-startLine+1) * glyphHeight * zoom,
		},
		Page:         v.reader.CurrentPage(),
		Scale:        zoom,
		InsideViewer: true,
	}
}

// textWidth returns the wrap width in columns.
func (v *View) textWidth() int {
	if v.width > 4 {
		return v.width - 4
	}
	return 76
}

// View renders the reader.
func (v *View) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%s  p.%d/%d  zoom %.2f",
		v.reader.CopyID(), v.reader.CurrentPage(), v.reader.TotalPages(), v.reader.Zoom())
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(v.renderPage())
	b.WriteString("\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: "+v.err.Error()) + "\n")
	}
	if v.notice != "" {
		b.WriteString(v.styles.Success.Render(v.notice) + "\n")
	}

	switch {
	case v.authoring:
		b.WriteString(v.renderAuthoring())
	case v.selection.State() == domain.SelectionPopover:
		b.WriteString(v.renderPopover())
	case v.selecting:
		b.WriteString(v.styles.Help.Render("w/b extend/shrink · enter confirm · esc cancel"))
	default:
		b.WriteString(v.styles.Help.Render("←/→ pages · v select · a annotations · / search · q quit"))
	}

	return b.String()
}

// renderPage renders the page text with the active selection styled.
func (v *View) renderPage() string {
	if len(v.words) == 0 {
		return v.styles.Muted.Render("(empty page)")
	}

	if !v.selecting {
		return v.styles.Normal.Render(wordwrap.String(v.pageText, v.textWidth()))
	}

	var parts []string
	for i, w := range v.words {
		if i >= v.selStart && i <= v.selEnd {
			parts = append(parts, v.styles.Selected.Render(w.text))
		} else {
			parts = append(parts, w.text)
		}
	}
	return wordwrap.String(strings.Join(parts, " "), v.textWidth())
}

// renderPopover renders the annotation action box over the candidate.
func (v *View) renderPopover() string {
	candidate := v.selection.Candidate()
	if candidate == nil {
		return ""
	}

	text := candidate.Text
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	content := fmt.Sprintf("%q\n[c] comment  [x] highlight  [esc] dismiss", text)
	return v.styles.Popover.Render(content)
}

// renderAuthoring renders the comment input modal.
func (v *View) renderAuthoring() string {
	content := v.styles.Subtitle.Render("New comment") + "\n" +
		v.input.View() + "\n" +
		v.styles.Help.Render("enter save · esc cancel")
	return v.styles.Popover.Render(content)
}

// Captures reports whether the view wants all key input: an active
// cursor selection, the popover, or the authoring modal.
func (v *View) Captures() bool {
	return v.selecting || v.authoring || v.selection.State() == domain.SelectionPopover
}

// Selecting reports whether a cursor selection is active (for tests).
func (v *View) Selecting() bool {
	return v.selecting
}

// Authoring reports whether the comment modal is open (for tests).
func (v *View) Authoring() bool {
	return v.authoring
}
