package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// QuoteState is the persisted record of the most recent remote quote. Booking
// only attempts a remote conversion when a quote id is present.
type QuoteState struct {
	QuoteID     string  `json:"quoteId"`
	QuoteNumber string  `json:"quoteNumber"`
	TotalPrice  float64 `json:"totalPrice"`
}

// StateStore persists QuoteState as a JSON file between invocations.
type StateStore struct {
	path string
}

// NewStateStore creates a store backed by the given file path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load returns the persisted state, or the zero state if none exists or the
// file is unreadable.
func (s *StateStore) Load() QuoteState {
	var state QuoteState
	data, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return QuoteState{}
	}
	return state
}

// Save writes the state to disk, creating parent directories as needed.
func (s *StateStore) Save(state QuoteState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Clear removes the persisted state. A missing file is not an error.
func (s *StateStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
