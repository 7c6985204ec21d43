// Package journal provides append-only, ordered persistence of ledger
// events, keyed by stream. Stores enforce optimistic versioning so a host
// replaying or extending a stream detects concurrent writers.
package journal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrConcurrencyConflict means the expected stream version did not match.
	ErrConcurrencyConflict = errors.New("journal: concurrency conflict")
	// ErrClosed means the store has been closed.
	ErrClosed = errors.New("journal: store closed")
)

// Record is a single journalled event. Versions are 0-based and contiguous
// within a stream.
type Record struct {
	ID        string          `json:"id"`
	StreamID  string          `json:"stream_id"`
	Version   int             `json:"version"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewRecord builds a record with a fresh ID and timestamp, marshalling the
// payload to JSON. Version is assigned by the store on append.
func NewRecord(streamID, eventType string, payload any) (*Record, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("journal: marshal payload: %w", err)
	}
	return &Record{
		ID:        uuid.New().String(),
		StreamID:  streamID,
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Decode unmarshals the record payload into out.
func (r *Record) Decode(out any) error {
	if err := json.Unmarshal(r.Data, out); err != nil {
		return fmt.Errorf("journal: decode payload: %w", err)
	}
	return nil
}

// Store is an append-only event store.
type Store interface {
	// Append adds records to a stream. expectedVersion is the current head
	// version (-1 for a new stream); a mismatch returns
	// ErrConcurrencyConflict. Returns the new head version.
	Append(ctx context.Context, streamID string, expectedVersion int, records []*Record) (int, error)

	// Read returns records of a stream starting at fromVersion, in order.
	Read(ctx context.Context, streamID string, fromVersion int) ([]*Record, error)

	// StreamVersion returns the head version of a stream, -1 if absent.
	StreamVersion(ctx context.Context, streamID string) (int, error)

	// Close releases underlying resources.
	Close() error
}
