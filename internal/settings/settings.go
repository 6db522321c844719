// Package settings stores the reader's typography preferences.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const settingsFileName = "settings.json"

// Typography defaults.
const (
	DefaultFontFamily = "serif"
	DefaultFontSize   = 18
	DefaultLineHeight = 1.6
)

// Settings is the process-wide typography aggregate. FontSize is in
// pixels, LineHeight a multiplier.
type Settings struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   int     `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		FontFamily: DefaultFontFamily,
		FontSize:   DefaultFontSize,
		LineHeight: DefaultLineHeight,
	}
}

// Store persists settings, writing on every change. Missing or
// malformed stored settings fall back to defaults field by field.
type Store struct {
	path string
	log  *zap.Logger

	mu      sync.Mutex
	current Settings
}

// OpenStore loads settings from dir, creating the directory if needed.
func OpenStore(dir string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		path:    filepath.Join(dir, settingsFileName),
		log:     log,
		current: Defaults(),
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		s.log.Warn("settings unreadable, using defaults", zap.Error(err))
		return
	}
	var stored Settings
	if err := json.Unmarshal(data, &stored); err != nil {
		s.log.Warn("settings corrupt, using defaults", zap.Error(err))
		return
	}
	s.current = normalize(stored)
}

// normalize substitutes defaults for absent or out-of-domain fields.
func normalize(in Settings) Settings {
	out := in
	if out.FontFamily != "serif" && out.FontFamily != "sans" {
		out.FontFamily = DefaultFontFamily
	}
	if out.FontSize <= 0 {
		out.FontSize = DefaultFontSize
	}
	if out.LineHeight <= 0 {
		out.LineHeight = DefaultLineHeight
	}
	return out
}

func (s *Store) save() {
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		s.log.Warn("settings encode failed, write skipped", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Warn("settings write skipped", zap.Error(err))
	}
}

// Current returns the current settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetFontFamily switches between "serif" and "sans" and persists.
func (s *Store) SetFontFamily(family string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.FontFamily = family
	s.current = normalize(s.current)
	s.save()
}

// SetFontSize updates the font size in pixels and persists.
func (s *Store) SetFontSize(px int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.FontSize = px
	s.current = normalize(s.current)
	s.save()
}

// SetLineHeight updates the line-height multiplier and persists.
func (s *Store) SetLineHeight(ratio float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current.LineHeight = ratio
	s.current = normalize(s.current)
	s.save()
}

// Reset restores defaults and persists.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = Defaults()
	s.save()
}
