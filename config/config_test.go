package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ResetThreshold != 0.95 {
		t.Errorf("ResetThreshold = %v, want 0.95", cfg.ResetThreshold)
	}
	if cfg.ProgressTTLDays != 365 {
		t.Errorf("ProgressTTLDays = %d, want 365", cfg.ProgressTTLDays)
	}
	if cfg.DefaultVolume != 1.0 || cfg.DefaultSpeed != 1.0 {
		t.Errorf("volume/speed = %v/%v, want 1/1", cfg.DefaultVolume, cfg.DefaultSpeed)
	}
	if strings.HasPrefix(cfg.AudioDir, "~") {
		t.Errorf("AudioDir not expanded: %s", cfg.AudioDir)
	}
}

func TestLoadOverridesSomeFieldsKeepsRest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "audio_dir: /srv/lectures\nreset_threshold: 0.9\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AudioDir != "/srv/lectures" {
		t.Errorf("AudioDir = %s", cfg.AudioDir)
	}
	if cfg.ResetThreshold != 0.9 {
		t.Errorf("ResetThreshold = %v", cfg.ResetThreshold)
	}
	if cfg.SocketPath != "/tmp/senahpark-lectures-mpv.sock" {
		t.Errorf("SocketPath lost its default: %s", cfg.SocketPath)
	}
	if cfg.ProgressTTLDays != 365 {
		t.Errorf("ProgressTTLDays lost its default: %d", cfg.ProgressTTLDays)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("audio_dir: [unclosed"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted malformed YAML")
	}
}

func TestProgressTTL(t *testing.T) {
	cfg := Config{ProgressTTLDays: 30}
	if got := cfg.ProgressTTL(); got != 30*24*time.Hour {
		t.Errorf("ProgressTTL = %v", got)
	}
	cfg.ProgressTTLDays = 0
	if got := cfg.ProgressTTL(); got != 365*24*time.Hour {
		t.Errorf("zero-day ProgressTTL = %v, want the default year", got)
	}
}
