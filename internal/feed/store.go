package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Record is the update feed descriptor served to end-user clients.
type Record struct {
	Version     string `json:"version"`
	VersionCode int64  `json:"versionCode"`
	ZipURL      string `json:"zipUrl"`
	Changelog   string `json:"changelog"`
}

// Store persists the feed record at a fixed update.json path.
type Store struct {
	path string
}

// NewStore creates a store for the given feed file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the feed record. A missing file returns a nil record without
// error; reconciliation treats that as "nothing published yet".
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read feed %s: %w", s.path, err)
	}

	record := &Record{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", s.path, err)
	}
	return record, nil
}

// Save writes the feed record with stable indentation.
func (s *Store) Save(record *Record) error {
	if record == nil {
		return errors.New("feed record is required")
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode feed: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write feed %s: %w", s.path, err)
	}
	return nil
}
