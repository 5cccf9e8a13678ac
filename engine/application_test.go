package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetrina/engine/core"
)

func TestLoadViewerConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vetrina.toml")
	content := `
name = "Test Viewer"
log_level = "warn"

[asset]
path = "models/ship.bin"

[decoder]
decompressor_endpoint = "http://decode.internal:9301/expand"
workers = 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadViewerConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Viewer", config.Name)
	assert.Equal(t, "models/ship.bin", config.Asset.Path)
	assert.Equal(t, "http://decode.internal:9301/expand", config.Decoder.DecompressorEndpoint)
	assert.Equal(t, 2, config.Decoder.Workers)
	// Untouched sections keep their defaults.
	assert.Equal(t, uint32(1280), config.Window.Width)
	assert.Equal(t, 30, config.Decoder.TimeoutSeconds)
	assert.Equal(t, core.WarnLevel, config.ParsedLogLevel())
}

func TestLoadViewerConfigMissingFile(t *testing.T) {
	_, err := LoadViewerConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadViewerConfigRejectsMalformedTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vetrina.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = [unclosed"), 0o644))

	_, err := LoadViewerConfig(path)
	assert.Error(t, err)
}

func TestParsedLogLevelFallsBackToInfo(t *testing.T) {
	config := DefaultViewerConfig()
	config.LogLevel = "verbose"
	assert.Equal(t, core.InfoLevel, config.ParsedLogLevel())
}
