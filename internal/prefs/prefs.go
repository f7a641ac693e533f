// Package prefs persists the small set of preferences that live outside the
// backend. Today that is exactly one value: the dark-mode flag. Everything
// else is rehydrated from the backend on each session start.
package prefs

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

type prefsData struct {
	DarkMode bool `json:"darkMode"`
}

// Prefs is a tiny read-write preference store backed by one JSON file.
type Prefs struct {
	mu   sync.Mutex
	path string
	data prefsData
}

// DefaultPath places the preference file under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fitrek", "preferences.json"), nil
}

// Open loads preferences from path. A missing file is not an error; it just
// means defaults.
func Open(path string) (*Prefs, error) {
	p := &Prefs{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &p.data); err != nil {
		return nil, err
	}
	return p, nil
}

// DarkMode returns the persisted dark-mode flag.
func (p *Prefs) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.data.DarkMode
}

// SetDarkMode persists the dark-mode flag.
func (p *Prefs) SetDarkMode(enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data.DarkMode = enabled
	return p.save()
}

func (p *Prefs) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(p.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, raw, 0o600)
}
