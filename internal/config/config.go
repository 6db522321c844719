// Package config loads the optional papertrail.toml configuration file
// and resolves the application's XDG directories.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

const (
	appDirName     = "papertrail"
	configFileName = "papertrail.toml"
)

// Config holds the tunables. All values have working defaults; the
// config file only needs the ones being changed.
type Config struct {
	// LastOpenedThresholdSeconds is the minimum drift before a document
	// read refreshes its last-opened timestamp on disk.
	LastOpenedThresholdSeconds int `toml:"last_opened_threshold_seconds"`
	// FlipDurationMS is the page transition window during which further
	// navigation is ignored.
	FlipDurationMS int `toml:"flip_duration_ms"`
	// TypingIntervalMS is the per-character delay of the first-view
	// typing animation.
	TypingIntervalMS int `toml:"typing_interval_ms"`
	// RecentLimit caps the recent-documents view.
	RecentLimit int `toml:"recent_limit"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LastOpenedThresholdSeconds: 60,
		FlipDurationMS:             400,
		TypingIntervalMS:           100,
		RecentLimit:                5,
	}
}

// Load reads papertrail.toml from dir. A missing file yields defaults;
// a malformed file yields defaults and a log entry. Unset fields keep
// their defaults.
func Load(dir string, log *zap.Logger) Config {
	if log == nil {
		log = zap.NewNop()
	}
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if os.IsNotExist(err) {
		return cfg
	}
	if err != nil {
		log.Warn("config unreadable, using defaults", zap.Error(err))
		return cfg
	}
	var loaded Config
	if err := toml.Unmarshal(data, &loaded); err != nil {
		log.Warn("config malformed, using defaults", zap.Error(err))
		return cfg
	}
	if loaded.LastOpenedThresholdSeconds > 0 {
		cfg.LastOpenedThresholdSeconds = loaded.LastOpenedThresholdSeconds
	}
	if loaded.FlipDurationMS > 0 {
		cfg.FlipDurationMS = loaded.FlipDurationMS
	}
	if loaded.TypingIntervalMS > 0 {
		cfg.TypingIntervalMS = loaded.TypingIntervalMS
	}
	if loaded.RecentLimit > 0 {
		cfg.RecentLimit = loaded.RecentLimit
	}
	return cfg
}

// LastOpenedThreshold returns the threshold as a duration.
func (c Config) LastOpenedThreshold() time.Duration {
	return time.Duration(c.LastOpenedThresholdSeconds) * time.Second
}

// FlipDuration returns the flip window as a duration.
func (c Config) FlipDuration() time.Duration {
	return time.Duration(c.FlipDurationMS) * time.Millisecond
}

// TypingInterval returns the typing delay as a duration.
func (c Config) TypingInterval() time.Duration {
	return time.Duration(c.TypingIntervalMS) * time.Millisecond
}

// StateDir returns XDG_STATE_HOME/papertrail or ~/.local/state/papertrail.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", appDirName)
}

// Dir returns XDG_CONFIG_HOME/papertrail or ~/.config/papertrail.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDirName)
}
