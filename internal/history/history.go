// Package history keeps a small most-recent-first record of past
// submissions on the client side. Persistence goes through the Store
// interface so any key-value backend can hold it.
package history

import (
	"encoding/json"
	"fmt"
	"time"
)

// MaxEntries bounds the history; older entries fall off the end.
const MaxEntries = 5

// Entry is one recorded submission.
type Entry struct {
	Input          string    `json:"input"`
	Output         string    `json:"output"`
	DetectedSource string    `json:"detectedSource"`
	TargetLang     string    `json:"targetLang"`
	Timestamp      time.Time `json:"timestamp"`
}

// Store is the persistence hook for the history. Get returns nil data when
// nothing has been stored yet.
type Store interface {
	Get() ([]byte, error)
	Set(data []byte) error
}

// Cache is the bounded history over a Store.
type Cache struct {
	store Store
}

// New creates a Cache persisting through store.
func New(store Store) *Cache {
	return &Cache{store: store}
}

// Record prepends entry, truncates to MaxEntries, and persists. The entry's
// timestamp is filled in when unset.
func (c *Cache) Record(entry Entry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	entries := append([]Entry{entry}, c.List()...)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := c.store.Set(data); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	return nil
}

// List returns the recorded entries, most recent first. Absent or
// unparseable persisted state reads as an empty history, never an error.
func (c *Cache) List() []Entry {
	data, err := c.store.Get()
	if err != nil || len(data) == 0 {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}
