package config

import (
	"io"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestInitializeFs(t *testing.T) {
	fs := afero.NewMemMapFs()

	cfg, err := InitializeFs(fs, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, 64, cfg.MaxTokens)

	// The written file loads back cleanly.
	reloaded, err := LoadFs(fs)
	require.NoError(t, err)
	assert.Equal(t, cfg.Prompt, reloaded.Prompt)

	t.Run("OpenHistoryLog", func(t *testing.T) {
		fd, err := cfg.OpenHistoryLog()
		assert.NoError(t, err)
		fd.Close()
	})
}

func TestInitializeFsKeepsExistingConfig(t *testing.T) {
	fs := afero.NewMemMapFs()
	custom := []byte("prompt: \"$ \"\n")
	require.NoError(t, afero.WriteFile(fs, ConfigurationName, custom, 0644))

	cfg, err := InitializeFs(fs, discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "$ ", cfg.Prompt)

	content, err := afero.ReadFile(fs, ConfigurationName)
	require.NoError(t, err)
	assert.Equal(t, custom, content)
}

func TestInitialize(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Initialize(dir, discardLogger())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Loading by directory path finds the same config.
	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Prompt, loaded.Prompt)

	// Loading by the config file's own path moves up a level.
	loaded, err = Load(dir + "/" + ConfigurationName)
	require.NoError(t, err)
	assert.Equal(t, cfg.Prompt, loaded.Prompt)
}
