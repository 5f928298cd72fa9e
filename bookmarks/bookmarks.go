// Package bookmarks provides persistent bookmark storage for the wisp
// browser. The store is a plain newline-delimited list of URLs so it
// can be edited by hand or piped through other tools.
package bookmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Store manages the bookmark collection.
type Store struct {
	path string
	urls []string
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wisp"), nil
}

// Load reads bookmarks from the default location, creating an empty
// file if none exists yet.
func Load() (*Store, error) {
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "bookmarks.txt"))
}

// Open reads bookmarks from an explicit path, creating an empty file
// if none exists.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.WriteFile(path, nil, 0644); err != nil {
			return nil, fmt.Errorf("creating bookmark file: %w", err)
		}
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		s.urls = append(s.urls, line)
	}
	return s, nil
}

// Save writes the collection to disk.
func (s *Store) Save() error {
	var sb strings.Builder
	for _, u := range s.urls {
		sb.WriteString(u)
		sb.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(sb.String()), 0644)
}

// Add appends a new bookmark and persists the store. Duplicates and
// empty URLs report false without touching the file.
func (s *Store) Add(url string) (bool, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return false, nil
	}
	for _, u := range s.urls {
		if u == url {
			return false, nil
		}
	}
	s.urls = append(s.urls, url)
	if err := s.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// All returns the bookmarks in insertion order.
func (s *Store) All() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.urls)
}

// Suggest fuzzy-matches input against the stored URLs and returns the
// best matches first, at most limit of them. Empty input suggests
// nothing.
func (s *Store) Suggest(input string, limit int) []string {
	matches := fuzzy.Find(strings.TrimSpace(input), s.urls)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
