package store

import (
	"context"
	"sync"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

// MemoryStore keeps the booking set in process memory behind a mutex.  It
// backs tests and local development; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	bookings []model.Booking
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the current set so callers cannot mutate the
// store's backing slice.
func (s *MemoryStore) Load(ctx context.Context) ([]model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Booking, len(s.bookings))
	copy(out, s.bookings)
	return out, nil
}

// SaveAll replaces the stored set with a copy of the given one.
func (s *MemoryStore) SaveAll(ctx context.Context, bookings []model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = make([]model.Booking, len(bookings))
	copy(s.bookings, bookings)
	return nil
}
