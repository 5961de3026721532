// Package history keeps an append-only JSON log of past analyses.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the format of Entry.Timestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Entry is one recorded analysis.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	FileName  string            `json:"fileName"`
	Results   map[string]string `json:"results"`
}

// Store reads and appends entries in a single JSON file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore returns a store backed by the file at path. The file and its
// directory are created on the first Append.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

// DefaultPath returns ~/.objfeat/history.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".objfeat", "history.json"), nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load returns all entries, oldest first. A missing file is an empty
// history.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode history %s: %w", s.path, err)
	}
	return entries, nil
}

// Append records a new entry for fileName and returns it.
func (s *Store) Append(fileName string, results map[string]string) (Entry, error) {
	entries, err := s.Load()
	if err != nil {
		return Entry{}, err
	}

	copied := make(map[string]string, len(results))
	for k, v := range results {
		copied[k] = v
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: s.now().Format(TimestampLayout),
		FileName:  fileName,
		Results:   copied,
	}
	entries = append(entries, entry)

	if err := s.write(entries); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// write replaces the history file through a temporary file in the same
// directory.
func (s *Store) write(entries []Entry) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
