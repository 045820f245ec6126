package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/margin-cli/internal/adapters/driven/config/file"
)

func setupTestConfig(t *testing.T) func() {
	t.Helper()

	old := configStore
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	configStore = store

	return func() {
		configStore = old
	}
}

func TestConfigSetAndGet(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "service.url", "https://api.example.com"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.NoError(t, err)

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "get", "service.url"})
	err = rootCmd.Execute()
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "https://api.example.com")
}

func TestConfigGet_UnknownKey(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "nonexistent"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigPath(t *testing.T) {
	cleanup := setupTestConfig(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "config.toml")
}

func TestConfigCmd_StoreNotConfigured(t *testing.T) {
	old := configStore
	configStore = nil
	defer func() {
		configStore = old
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "get", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
