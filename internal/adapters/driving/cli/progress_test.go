package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressSetAndShow(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"progress", "set", "copy-1", "30", "120", "--zoom", "1.5"})
	defer func() {
		rootCmd.SetArgs(nil)
		progressZoom = 1.0
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "page 30 of 120 (25%)")

	buf.Reset()
	rootCmd.SetArgs([]string{"progress", "show", "copy-1"})
	err = rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "page 30 of 120")
	assert.Contains(t, buf.String(), "zoom 1.50")
}

func TestProgressShow_NothingRecorded(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"progress", "show", "copy-unknown"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No reading position recorded.")
}

func TestProgressSet_RejectsNonNumericPage(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"progress", "set", "copy-1", "ten", "120"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
