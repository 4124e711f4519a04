// Package watch tracks the last watched position per series in a
// small JSON file.
package watch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Position is the last watched episode of one series.
type Position struct {
	Season  int `json:"season"`
	Episode int `json:"episode"`
}

// Store persists watch positions keyed by series title. A missing or
// unreadable file starts empty rather than failing: losing positions
// beats refusing to start.
type Store struct {
	path string

	mu        sync.Mutex
	positions map[string]Position
}

// Open loads the store at path, creating parent directories as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}

	s := &Store{path: path, positions: make(map[string]Position)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read watch file: %w", err)
	}
	if err := json.Unmarshal(data, &s.positions); err != nil {
		// Corrupt file: start over, the positions are advisory.
		s.positions = make(map[string]Position)
	}
	return s, nil
}

// Get returns the stored position for a series title.
func (s *Store) Get(title string) (Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.positions[title]
	return p, ok
}

// Set records the position for a series title and persists the file.
func (s *Store) Set(title string, p Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[title] = p
	return s.save()
}

// Remove forgets the position for a series title and persists the
// file. Removing an unknown title is not an error.
func (s *Store) Remove(title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[title]; !ok {
		return nil
	}
	delete(s.positions, title)
	return s.save()
}

// Titles returns every tracked series title, sorted.
func (s *Store) Titles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	titles := make([]string, 0, len(s.positions))
	for t := range s.positions {
		titles = append(titles, t)
	}
	sort.Strings(titles)
	return titles
}

// save writes the positions atomically via temp file and rename.
// Callers hold the mutex.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.positions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watch positions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".watch-*")
	if err != nil {
		return fmt.Errorf("create temp watch file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write watch file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close watch file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("install watch file: %w", err)
	}
	return nil
}
