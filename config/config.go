// Package config loads application settings from a YAML file, falling back
// to sensible defaults when the file or any field is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable setting.
type Config struct {
	// AudioDir is where lecture recordings live.
	AudioDir string `yaml:"audio_dir"`

	// DatabasePath is the SQLite file holding the catalog and progress.
	DatabasePath string `yaml:"database_path"`

	// SocketPath is the mpv IPC socket.
	SocketPath string `yaml:"socket_path"`

	// ResetThreshold is the completion fraction at which saved progress
	// resets to the start.
	ResetThreshold float64 `yaml:"reset_threshold"`

	// ProgressTTLDays is how many days a saved position stays valid.
	ProgressTTLDays int `yaml:"progress_ttl_days"`

	// DefaultVolume is the starting volume, 0 to 1.
	DefaultVolume float64 `yaml:"default_volume"`

	// DefaultSpeed is the starting playback speed.
	DefaultSpeed float64 `yaml:"default_speed"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		AudioDir:        "~/Music/lectures",
		DatabasePath:    "~/.local/share/senahpark/lectures.db",
		SocketPath:      "/tmp/senahpark-lectures-mpv.sock",
		ResetThreshold:  0.95,
		ProgressTTLDays: 365,
		DefaultVolume:   1.0,
		DefaultSpeed:    1.0,
	}
}

// DefaultPath returns ~/.config/senahpark/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "senahpark", "config.yaml"), nil
}

// Load reads the config file at path. A missing file yields the defaults;
// present fields override them and absent fields keep them. Paths with a
// leading ~ are expanded.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg.expand()
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg.expand()
}

// ProgressTTL returns the progress lifetime as a duration.
func (c Config) ProgressTTL() time.Duration {
	days := c.ProgressTTLDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

func (c Config) expand() (Config, error) {
	var err error
	if c.AudioDir, err = expandHome(c.AudioDir); err != nil {
		return Config{}, err
	}
	if c.DatabasePath, err = expandHome(c.DatabasePath); err != nil {
		return Config{}, err
	}
	return c, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
