package journal

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store, primarily for tests and ephemeral
// hosts.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Record
	closed  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Record)}
}

// Append implements Store.
func (s *MemoryStore) Append(_ context.Context, streamID string, expectedVersion int, records []*Record) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return -1, ErrClosed
	}

	stream := s.streams[streamID]
	head := len(stream) - 1
	if head != expectedVersion {
		return head, ErrConcurrencyConflict
	}

	for _, r := range records {
		head++
		r.StreamID = streamID
		r.Version = head
		stored := *r
		stream = append(stream, &stored)
	}
	s.streams[streamID] = stream
	return head, nil
}

// Read implements Store.
func (s *MemoryStore) Read(_ context.Context, streamID string, fromVersion int) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	stream := s.streams[streamID]
	if fromVersion < 0 {
		fromVersion = 0
	}
	if fromVersion >= len(stream) {
		return nil, nil
	}
	out := make([]*Record, len(stream)-fromVersion)
	copy(out, stream[fromVersion:])
	return out, nil
}

// StreamVersion implements Store.
func (s *MemoryStore) StreamVersion(_ context.Context, streamID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return -1, ErrClosed
	}
	return len(s.streams[streamID]) - 1, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
