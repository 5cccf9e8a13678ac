package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vetrina/engine/core"
)

type ViewerConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// One of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	Window  WindowConfig  `toml:"window"`
	Asset   AssetConfig   `toml:"asset"`
	Decoder DecoderConfig `toml:"decoder"`
}

type WindowConfig struct {
	// Window starting position x axis, if applicable.
	PosX uint32 `toml:"pos_x"`
	// Window starting position y axis, if applicable.
	PosY uint32 `toml:"pos_y"`
	// Window starting width.
	Width uint32 `toml:"width"`
	// Window starting height.
	Height uint32 `toml:"height"`
}

type AssetConfig struct {
	// Path of the asset file to load and watch for changes.
	Path string `toml:"path"`
}

type DecoderConfig struct {
	// Fixed network location of the geometry-decompression stage.
	// Configured once at process start.
	DecompressorEndpoint string `toml:"decompressor_endpoint"`
	// Per-request timeout in seconds against the decompression stage.
	TimeoutSeconds int `toml:"timeout_seconds"`
	// Number of decode workers.
	Workers int `toml:"workers"`
	// Decode queue depth.
	QueueSize int `toml:"queue_size"`
}

func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		Name:     "Vetrina Viewer",
		LogLevel: "debug",
		Window: WindowConfig{
			PosX:   100,
			PosY:   100,
			Width:  1280,
			Height: 720,
		},
		Asset: AssetConfig{
			Path: "assets/model.toml",
		},
		Decoder: DecoderConfig{
			DecompressorEndpoint: "http://localhost:9301/decompress",
			TimeoutSeconds:       30,
			Workers:              1,
			QueueSize:            4,
		},
	}
}

// LoadViewerConfig reads a TOML configuration file on top of the defaults.
func LoadViewerConfig(path string) (*ViewerConfig, error) {
	config := DefaultViewerConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config '%s': %w", path, err)
	}
	return config, nil
}

// ParsedLogLevel maps the configured level name onto a logger level.
// Unknown names fall back to info with a warning.
func (c *ViewerConfig) ParsedLogLevel() core.LogLevel {
	switch c.LogLevel {
	case "debug":
		return core.DebugLevel
	case "info":
		return core.InfoLevel
	case "warn":
		return core.WarnLevel
	case "error":
		return core.ErrorLevel
	default:
		core.LogWarn("unknown log level '%s', using info", c.LogLevel)
		return core.InfoLevel
	}
}
