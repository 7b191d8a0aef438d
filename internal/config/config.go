// Package config loads and saves the cubegrid TOML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/SeamusWaldron/cubegrid"
)

// Config is the contents of config.toml.
type Config struct {
	Settings cubegrid.Settings `toml:"settings"`
	Render   RenderConfig      `toml:"render"`
	Storage  StorageConfig     `toml:"storage"`
	Server   ServerConfig      `toml:"server"`

	// Unknown lists keys present in the file that no field consumed.
	Unknown []string `toml:"-"`
}

// RenderConfig controls the viewport and headless rendering.
type RenderConfig struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	FPS        int    `toml:"fps"`
	Background string `toml:"background"`
}

// StorageConfig controls the move journal.
type StorageConfig struct {
	Path      string `toml:"path"` // Empty means the default journal path
	BatchSize int    `toml:"batch_size"`
	Record    bool   `toml:"record"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Settings: cubegrid.DefaultSettings(),
		Render: RenderConfig{
			Width:      cubegrid.DefaultViewport.Width,
			Height:     cubegrid.DefaultViewport.Height,
			FPS:        60,
			Background: "#1E1E24",
		},
		Storage: StorageConfig{BatchSize: 256},
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// DefaultPath returns ~/.cubegrid/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubegrid", "config.toml"), nil
}

// Viewport returns the configured viewport.
func (c Config) Viewport() cubegrid.Viewport {
	return cubegrid.Viewport{Width: c.Render.Width, Height: c.Render.Height}
}

// FrameInterval returns the time between frames at the configured rate.
func (c Config) FrameInterval() time.Duration {
	if c.Render.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Render.FPS)
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if !c.Viewport().Valid() {
		return fmt.Errorf("render: invalid size %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		return fmt.Errorf("render: fps %d out of range", c.Render.FPS)
	}
	if c.Storage.BatchSize < 1 {
		return fmt.Errorf("storage: batch_size must be positive")
	}
	return nil
}

// Load reads the file at path, or DefaultPath when path is empty. Fields
// the file omits keep their defaults, and a missing file yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		cfg.Unknown = append(cfg.Unknown, key.String())
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
