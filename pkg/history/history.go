// Package history records completed merges so users can review what was
// produced, when, and from how many inputs.
//
// The default backend keeps a single JSON file in the platform data
// directory, capped to a fixed number of entries with the oldest evicted
// first.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is how many entries a store keeps by default.
const DefaultLimit = 100

// Entry records one completed merge.
type Entry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Category  string        `json:"category"`
	Inputs    int           `json:"inputs"`
	Skipped   int           `json:"skipped,omitempty"`
	Output    string        `json:"output"`
	Width     int           `json:"width,omitempty"`
	Height    int           `json:"height,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Store is the interface for history backends.
type Store interface {
	// Append records an entry, evicting the oldest ones beyond the
	// store's limit. A missing ID or timestamp is filled in.
	Append(ctx context.Context, e Entry) error

	// List returns the recorded entries, most recent first.
	List(ctx context.Context) ([]Entry, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}

// stamp fills in the generated fields of an entry.
func stamp(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return e
}
