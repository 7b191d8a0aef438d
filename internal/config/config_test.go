package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubegrid"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Settings != cubegrid.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", cfg.Settings)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[settings]
grid_size = 8
sync = true
color_scheme = "neon"

[server]
addr = ":9000"

[extra]
thing = 1
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Settings.GridSize != 8 || !cfg.Settings.Sync || cfg.Settings.ColorScheme != "neon" {
		t.Errorf("settings = %+v", cfg.Settings)
	}
	if cfg.Settings.Frequency != cubegrid.DefaultFrequency {
		t.Errorf("frequency = %d, want default %d", cfg.Settings.Frequency, cubegrid.DefaultFrequency)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Render.FPS != 60 {
		t.Errorf("fps = %d, want 60", cfg.Render.FPS)
	}
	if len(cfg.Unknown) != 1 || cfg.Unknown[0] != "extra.thing" {
		t.Errorf("unknown keys = %v", cfg.Unknown)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "[settings\n"},
		{"bad scheme", "[settings]\ncolor_scheme = \"plaid\"\n"},
		{"bad size", "[render]\nwidth = 0\n"},
		{"bad fps", "[render]\nfps = 1000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if cfg.Settings != cubegrid.DefaultSettings() {
				t.Error("failed load should return defaults")
			}
		})
	}
}

func TestLoadUnknownScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[settings]\ncolor_scheme = \"plaid\"\n"), 0644)
	_, err := Load(path)
	if !errors.Is(err, cubegrid.ErrUnknownScheme) {
		t.Errorf("err = %v, want ErrUnknownScheme", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	cfg := Default()
	cfg.Settings.Speed = 2.5
	cfg.Settings.Playback = cubegrid.PlaybackPause
	cfg.Storage.Record = true
	cfg.Storage.Path = "/tmp/journal.db"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Settings != cfg.Settings || got.Storage != cfg.Storage || got.Render != cfg.Render {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := Default()
	cfg.Render.FPS = 50
	if got := cfg.FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("FrameInterval = %v", got)
	}
	cfg.Render.FPS = 0
	if got := cfg.FrameInterval(); got != time.Second/60 {
		t.Errorf("FrameInterval at 0 fps = %v", got)
	}
}
