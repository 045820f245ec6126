package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_PageBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.NextPage.Keys(), "right")
	assert.Contains(t, km.NextPage.Keys(), "l")
	assert.Contains(t, km.PrevPage.Keys(), "left")
	assert.Contains(t, km.PrevPage.Keys(), "h")
}

func TestDefaultKeyMap_SelectionBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.SelectMode.Keys(), "v")
	assert.Contains(t, km.Extend.Keys(), "w")
	assert.Contains(t, km.Shrink.Keys(), "b")
	assert.Contains(t, km.Comment.Keys(), "c")
	assert.Contains(t, km.Highlight.Keys(), "x")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
}

func TestHelpGroups_NotEmpty(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ReaderHelp())
	assert.NotEmpty(t, km.SelectionHelp())
	assert.NotEmpty(t, km.PopoverHelp())
}
