// Package prefs persists viewer preferences for the trail programs between
// runs. The effect itself keeps no state across mounts; only the programs'
// own choices (image folder, overlays, window size) are stored here.
package prefs

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	prefsObject   = "prefs"
	prefsProperty = "viewer"
)

// Prefs are the remembered viewer choices.
type Prefs struct {
	ImageDir     string `yaml:"imageDir"`
	ShowHUD      bool   `yaml:"showHud"`
	Tone         bool   `yaml:"tone"`
	WindowWidth  int    `yaml:"windowWidth"`
	WindowHeight int    `yaml:"windowHeight"`
}

// Default returns the preferences used before anything has been saved.
func Default() Prefs {
	return Prefs{
		ImageDir:     "images",
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// Store loads and saves Prefs through gdata. A Store without a gdata
// manager keeps preferences in memory only.
type Store struct {
	gd    *gdata.Manager
	prefs Prefs
}

// Open opens the gdata storage for appName and loads saved preferences.
// Storage errors are logged and leave the store in memory-only mode.
func Open(appName string) *Store {
	gd, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[prefs] storage unavailable, preferences will not persist: %v", err)
		gd = nil
	}
	return New(gd)
}

// New wraps gd, which may be nil, and loads saved preferences.
func New(gd *gdata.Manager) *Store {
	s := &Store{gd: gd, prefs: Default()}
	if err := s.Load(); err != nil {
		log.Printf("[prefs] %v (using defaults)", err)
	}
	return s
}

// Persistent reports whether Save writes to disk.
func (s *Store) Persistent() bool {
	return s.gd != nil
}

// Load replaces the in-memory preferences with the saved ones. Missing
// storage or a missing entry leaves the defaults in place.
func (s *Store) Load() error {
	s.prefs = Default()
	if s.gd == nil || !s.gd.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := s.gd.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load prefs: %w", err)
	}
	loaded := Default()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decode prefs: %w", err)
	}
	s.prefs = loaded
	return nil
}

// Save writes the current preferences. It is a no-op in memory-only mode.
func (s *Store) Save() error {
	if s.gd == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}
	if err := s.gd.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

// Get returns a copy of the current preferences.
func (s *Store) Get() Prefs {
	return s.prefs
}

// Set replaces the current preferences. Non-positive window sizes keep the
// previous values. Call Save to persist.
func (s *Store) Set(p Prefs) {
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = s.prefs.WindowWidth, s.prefs.WindowHeight
	}
	s.prefs = p
}
