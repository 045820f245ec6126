// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// NextPage turns to the next document page.
	NextPage key.Binding

	// PrevPage turns to the previous document page.
	PrevPage key.Binding

	// ZoomIn increases the scale factor.
	ZoomIn key.Binding

	// ZoomOut decreases the scale factor.
	ZoomOut key.Binding

	// SelectMode enters text selection on the current page.
	SelectMode key.Binding

	// Extend grows the active selection by one word.
	Extend key.Binding

	// Shrink shrinks the active selection by one word.
	Shrink key.Binding

	// Comment opens the comment authoring modal on a selection.
	Comment key.Binding

	// Highlight commits the selection as a highlight.
	Highlight key.Binding

	// Annotations opens the annotation list.
	Annotations key.Binding

	// Search opens the knowledge search view.
	Search key.Binding

	// Delete removes the selected annotation.
	Delete key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "previous page"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		SelectMode: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "select text"),
		),
		Extend: key.NewBinding(
			key.WithKeys("w", "right"),
			key.WithHelp("w", "extend selection"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("b", "shrink selection"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		Highlight: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "highlight"),
		),
		Annotations: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "annotations"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

// ReaderHelp returns keybindings shown in the reader footer.
func (k *KeyMap) ReaderHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.SelectMode, k.Annotations, k.Search, k.Quit}
}

// SelectionHelp returns keybindings shown while selecting text.
func (k *KeyMap) SelectionHelp() []key.Binding {
	return []key.Binding{k.Extend, k.Shrink, k.Select, k.Back}
}

// PopoverHelp returns keybindings shown while the popover is open.
func (k *KeyMap) PopoverHelp() []key.Binding {
	return []key.Binding{k.Comment, k.Highlight, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
