// Package memory keeps the bounded per-context decision history that feeds
// the outcome feedback loop.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"txn-decision-engine/pkg/types"
)

// MaxPerKey bounds each context key's history; the oldest records are
// evicted first.
const MaxPerKey = 100

// ErrNotFound reports a missing request identifier.
var ErrNotFound = errors.New("memory record not found")

// Record is one remembered pipeline run. Never mutated after append.
type Record struct {
	RequestID string                `json:"request_id"`
	Timestamp time.Time             `json:"timestamp"`
	Context   types.ContextSnapshot `json:"context"`
	Input     types.Payload         `json:"input"`
	Result    types.Result          `json:"result"`
}

// Store is the bounded append log, keyed by "{role}_{system_state}". All
// mutations serialize behind a single mutex; the durable snapshot is written
// with a temp-file-then-rename so a crash mid-write never corrupts it.
type Store struct {
	mu        sync.Mutex
	path      string
	entries   map[string][]Record
	byRequest map[string]Record
}

// NewStore loads the snapshot at path if one exists. A missing file is a
// fresh store, not an error.
func NewStore(path string) (*Store, error) {
	store := &Store{
		path:      path,
		entries:   make(map[string][]Record),
		byRequest: make(map[string]Record),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read memory snapshot: %w", err)
	}
	if err := json.Unmarshal(data, &store.entries); err != nil {
		return nil, fmt.Errorf("decode memory snapshot: %w", err)
	}

	for _, records := range store.entries {
		for _, record := range records {
			if record.RequestID != "" {
				store.byRequest[record.RequestID] = record
			}
		}
	}
	return store, nil
}

// Append adds a record to the end of its key's list, evicting from the
// front past MaxPerKey, and persists the snapshot. A persistence failure is
// returned for the caller to log; the in-memory append has already happened
// and the decision it records is unaffected.
func (s *Store) Append(key string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.entries[key], record)
	for len(records) > MaxPerKey {
		evicted := records[0]
		records = records[1:]
		if evicted.RequestID != "" && evicted.RequestID != record.RequestID {
			delete(s.byRequest, evicted.RequestID)
		}
	}
	s.entries[key] = records

	if record.RequestID != "" {
		s.byRequest[record.RequestID] = record
	}

	return s.persistLocked()
}

// FindByRequestID returns the remembered record for the identifier.
func (s *Store) FindByRequestID(id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byRequest[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return record, nil
}

// Records returns a copy of the list stored under key.
func (s *Store) Records(key string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.entries[key]...)
}

// Len reports the number of records stored under key.
func (s *Store) Len(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries[key])
}

func (s *Store) persistLocked() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode memory snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".memory-*.json")
	if err != nil {
		return fmt.Errorf("create snapshot temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
