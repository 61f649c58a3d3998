package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file
	t.Setenv("CLIPFLOW_DATA_DIR", filepath.Join(t.TempDir(), "data"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Facing != "back" {
		t.Errorf("facing = %q, want back", cfg.Facing)
	}
	if !cfg.AudioEnabled {
		t.Error("audio should default to enabled")
	}
	if cfg.PlayerCommand != "mpv" {
		t.Errorf("player = %q, want mpv", cfg.PlayerCommand)
	}
	if cfg.DBPath != filepath.Join(cfg.DataDir, "clipflow.sqlite") {
		t.Errorf("db path = %q, want under data dir", cfg.DBPath)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CLIPFLOW_DATA_DIR", filepath.Join(t.TempDir(), "media"))
	t.Setenv("CLIPFLOW_FACING", "front")
	t.Setenv("CLIPFLOW_FRONT_CAMERA", "/dev/video9")
	t.Setenv("CLIPFLOW_AUDIO", "false")
	t.Setenv("CLIPFLOW_PLAYER", "vlc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Facing != "front" {
		t.Errorf("facing = %q, want front", cfg.Facing)
	}
	if cfg.Camera() != "/dev/video9" {
		t.Errorf("camera = %q, want /dev/video9", cfg.Camera())
	}
	if cfg.AudioEnabled {
		t.Error("audio should be disabled")
	}
	if cfg.PlayerCommand != "vlc" {
		t.Errorf("player = %q, want vlc", cfg.PlayerCommand)
	}
}

func TestCameraByFacing(t *testing.T) {
	cfg := &Config{BackCamera: "/dev/video0", FrontCamera: "/dev/video1", Facing: "back"}
	if cfg.Camera() != "/dev/video0" {
		t.Errorf("back camera = %q", cfg.Camera())
	}
	cfg.Facing = "front"
	if cfg.Camera() != "/dev/video1" {
		t.Errorf("front camera = %q", cfg.Camera())
	}
}

func TestLoadCreatesDataDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	t.Setenv("CLIPFLOW_DATA_DIR", dataDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != dataDir {
		t.Errorf("data dir = %q, want %q", cfg.DataDir, dataDir)
	}
	if info, err := os.Stat(dataDir); err != nil || !info.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}
}
