// Package session handles saving and restoring browser session state.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session is the persisted navigation state: the history stack and the
// cursor into it.
type Session struct {
	Stack    []string `json:"stack"`
	Position int      `json:"position"`
}

// Path returns the session file path.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wisp", "session.json"), nil
}

// Load reads the session from disk.
func Load() (*Session, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a session from an explicit path.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the session to disk.
func Save(s *Session) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo writes a session to an explicit path, creating the directory
// if needed.
func SaveTo(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clear removes the session file.
func Clear() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return os.Remove(path)
}
