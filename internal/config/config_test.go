package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Display.Height)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Display.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Controls.MoveSpeed != 2.5 {
		t.Errorf("expected move speed 2.5, got %f", cfg.Controls.MoveSpeed)
	}
	if cfg.Controls.InvertY {
		t.Error("expected invert_y to be false by default")
	}

	if cfg.XR.Enabled {
		t.Error("expected XR to be disabled by default")
	}
	if cfg.XR.Mode != "immersive" {
		t.Errorf("expected XR mode 'immersive', got %s", cfg.XR.Mode)
	}

	if cfg.Game.StartRoom != "/" {
		t.Errorf("expected start room '/', got %s", cfg.Game.StartRoom)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "config.yaml")
	yaml := `display:
  width: 1920
  height: 1080
xr:
  enabled: true
  mode: magicwindow
game:
  start_room: /planets
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}

	if cfg.Display.Width != 1920 || cfg.Display.Height != 1080 {
		t.Errorf("display = %dx%d, want 1920x1080", cfg.Display.Width, cfg.Display.Height)
	}
	if !cfg.XR.Enabled || cfg.XR.Mode != "magicwindow" {
		t.Errorf("xr = %+v, want enabled magicwindow", cfg.XR)
	}
	if cfg.Game.StartRoom != "/planets" {
		t.Errorf("start room = %s, want /planets", cfg.Game.StartRoom)
	}
	// Fields absent from the file keep their defaults.
	if !cfg.Display.VSync {
		t.Error("vsync default was lost on merge")
	}
	if cfg.Controls.MoveSpeed != 2.5 {
		t.Errorf("move speed default was lost on merge: %f", cfg.Controls.MoveSpeed)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	path := filepath.Join(tempDir, "nested", "config.yaml")

	cfg := Default()
	cfg.Display.Width = 800
	cfg.Game.StartRoom = "/gallery"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if loaded.Display.Width != 800 {
		t.Errorf("width = %d, want 800", loaded.Display.Width)
	}
	if loaded.Game.StartRoom != "/gallery" {
		t.Errorf("start room = %s, want /gallery", loaded.Game.StartRoom)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, filepath.Join(os.TempDir(), "does-not-exist-roomwalk.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
