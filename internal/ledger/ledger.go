package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
	"github.com/QASchoolUSA/QAXP-Booking/internal/store"
)

// Ledger is the single source of truth for committed bookings.  The store
// is injected, never ambient.  Commit serializes the whole
// check-then-write sequence behind a mutex so two in-process commits can
// never both pass the overlap check before either writes.
type Ledger struct {
	store store.Store
	log   *zap.Logger
	now   func() time.Time

	mu sync.Mutex // guards the read-check-write sequence in Commit
}

// New returns a ledger over the given store using the wall clock.
func New(s store.Store, log *zap.Logger) *Ledger {
	return NewWithClock(s, log, time.Now)
}

// NewWithClock is New with an injected clock, for tests that need a
// deterministic CreatedAt.
func NewWithClock(s store.Store, log *zap.Logger, now func() time.Time) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{store: s, log: log, now: now}
}

// List returns the full current booking set in stable insertion order.
// Reads fail soft: an unreadable store is logged and reported as an empty
// set so the availability view degrades to "all slots free" instead of
// crashing the caller.
func (l *Ledger) List(ctx context.Context) []model.Booking {
	bookings, err := l.store.Load(ctx)
	if err != nil {
		l.log.Warn("failed to load bookings, treating store as empty", zap.Error(err))
		return []model.Booking{}
	}
	return bookings
}

// IsOverlapping reports whether the candidate interval [date+time,
// date+time+duration) intersects any existing booking on the same date.
// Intersection is half-open: a candidate starting exactly when another
// booking ends does not overlap.  The check is read-only.
func (l *Ledger) IsOverlapping(ctx context.Context, date, timeOfDay string, durationMinutes int) (bool, error) {
	start, err := minuteOfDay(timeOfDay)
	if err != nil {
		return false, fmt.Errorf("parse time %q: %w", timeOfDay, err)
	}
	return l.overlapsAny(l.List(ctx), date, start, durationMinutes), nil
}

// Commit validates the input, re-checks the slot against the current store
// state and, if clear, appends the new booking and persists the full set.
// The final overlap check runs immediately before the write, closing the
// gap between the UI showing a slot as free and the user submitting.
// Notification dispatch is the caller's concern; a dispatch failure must
// never reverse a committed booking.
func (l *Ledger) Commit(ctx context.Context, in model.BookingInput) (model.Booking, error) {
	if err := in.Validate(); err != nil {
		return model.Booking{}, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	start, err := minuteOfDay(in.Time)
	if err != nil {
		return model.Booking{}, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// A blind SaveAll over a failed Load would wipe existing bookings, so
	// the commit path treats an unreadable store as a hard failure rather
	// than the empty set the read path degrades to.
	bookings, err := l.store.Load(ctx)
	if err != nil {
		return model.Booking{}, fmt.Errorf("%w: load: %v", ErrPersistence, err)
	}

	if l.overlapsAny(bookings, in.Date, start, in.Duration) {
		return model.Booking{}, ErrSlotTaken
	}

	booking := model.Booking{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Notes:     in.Notes,
		Date:      in.Date,
		Time:      in.Time,
		Duration:  in.Duration,
		CreatedAt: l.now(),
	}

	if err := l.store.SaveAll(ctx, append(bookings, booking)); err != nil {
		return model.Booking{}, fmt.Errorf("%w: save: %v", ErrPersistence, err)
	}

	l.log.Info("booking committed",
		zap.String("id", booking.ID),
		zap.String("date", booking.Date),
		zap.String("time", booking.Time),
		zap.Int("duration", booking.Duration),
	)
	return booking, nil
}

// overlapsAny scans the given set for a same-date booking whose half-open
// interval intersects [start, start+duration).  Bookings on other dates
// are never considered; no cross-midnight spanning is modelled.
func (l *Ledger) overlapsAny(bookings []model.Booking, date string, start, durationMinutes int) bool {
	end := start + durationMinutes
	for _, b := range bookings {
		if b.Date != date {
			continue
		}
		bStart, err := minuteOfDay(b.Time)
		if err != nil {
			l.log.Warn("stored booking has unparsable time, skipping in overlap check",
				zap.String("id", b.ID), zap.String("time", b.Time))
			continue
		}
		bEnd := bStart + b.Duration
		if start < bEnd && end > bStart {
			return true
		}
	}
	return false
}

// minuteOfDay converts an HH:mm string to minutes since midnight.
func minuteOfDay(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
