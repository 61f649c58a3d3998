// Package config loads clipflow configuration from a TOML file with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds all runtime settings.
type Config struct {
	DataDir       string // where segment files are written
	DBPath        string // SQLite database backing the project store
	BackCamera    string // input device for back-facing capture
	FrontCamera   string // input device for front-facing capture
	CaptureFormat string // ffmpeg input format
	Facing        string // default facing: "back" or "front"
	AudioEnabled  bool
	PlayerCommand string // gapless playback binary
}

type fileConfig struct {
	DataDir       string `toml:"data_dir"`
	DBPath        string `toml:"db_path"`
	BackCamera    string `toml:"back_camera"`
	FrontCamera   string `toml:"front_camera"`
	CaptureFormat string `toml:"capture_format"`
	Facing        string `toml:"facing"`
	AudioEnabled  *bool  `toml:"audio_enabled"`
	PlayerCommand string `toml:"player_command"`
}

// Load reads the config file (if any), applies CLIPFLOW_* environment
// overrides, and ensures the data directory exists.
func Load() (*Config, error) {
	cfg := &Config{
		DataDir:       defaultDataDir(),
		BackCamera:    "/dev/video0",
		FrontCamera:   "/dev/video1",
		CaptureFormat: "v4l2",
		Facing:        "back",
		AudioEnabled:  true,
		PlayerCommand: "mpv",
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.DataDir != "" {
				cfg.DataDir = expandTilde(fc.DataDir)
			}
			if fc.DBPath != "" {
				cfg.DBPath = expandTilde(fc.DBPath)
			}
			if fc.BackCamera != "" {
				cfg.BackCamera = fc.BackCamera
			}
			if fc.FrontCamera != "" {
				cfg.FrontCamera = fc.FrontCamera
			}
			if fc.CaptureFormat != "" {
				cfg.CaptureFormat = fc.CaptureFormat
			}
			if fc.Facing != "" {
				cfg.Facing = fc.Facing
			}
			if fc.AudioEnabled != nil {
				cfg.AudioEnabled = *fc.AudioEnabled
			}
			if fc.PlayerCommand != "" {
				cfg.PlayerCommand = fc.PlayerCommand
			}
		}
	}

	applyEnvOverrides(cfg)

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "clipflow.sqlite")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Camera returns the input device for the configured facing.
func (c *Config) Camera() string {
	if c.Facing == "front" {
		return c.FrontCamera
	}
	return c.BackCamera
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLIPFLOW_DATA_DIR"); v != "" {
		cfg.DataDir = expandTilde(v)
	}
	if v := os.Getenv("CLIPFLOW_DB_PATH"); v != "" {
		cfg.DBPath = expandTilde(v)
	}
	if v := os.Getenv("CLIPFLOW_BACK_CAMERA"); v != "" {
		cfg.BackCamera = v
	}
	if v := os.Getenv("CLIPFLOW_FRONT_CAMERA"); v != "" {
		cfg.FrontCamera = v
	}
	if v := os.Getenv("CLIPFLOW_CAPTURE_FORMAT"); v != "" {
		cfg.CaptureFormat = v
	}
	if v := os.Getenv("CLIPFLOW_FACING"); v != "" {
		cfg.Facing = v
	}
	if v := os.Getenv("CLIPFLOW_AUDIO"); v != "" {
		cfg.AudioEnabled = v != "0" && !strings.EqualFold(v, "false")
	}
	if v := os.Getenv("CLIPFLOW_PLAYER"); v != "" {
		cfg.PlayerCommand = v
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "clipflow")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "clipflow")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "clipflow")
	}
	return filepath.Join(".", "clipflow")
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
