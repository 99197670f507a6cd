// Package queue defines message payloads exchanged over the message broker
// and the publisher/consumer pair around the booking.confirmed queue.
package queue

import (
	"time"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

// BookingConfirmedEvent is published after a booking commit succeeds.  It
// carries enough information for downstream consumers to notify the
// customer and the operator without querying the booking store.
type BookingConfirmedEvent struct {
	BookingID string `json:"booking_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Notes     string `json:"notes,omitempty"`
	Date      string `json:"date"`     // YYYY-MM-DD
	Time      string `json:"time"`     // HH:mm
	Duration  int    `json:"duration"` // minutes
	CreatedAt string `json:"created_at"`
}

// NewBookingConfirmed builds the event for a freshly committed booking.
func NewBookingConfirmed(b model.Booking) BookingConfirmedEvent {
	return BookingConfirmedEvent{
		BookingID: b.ID,
		Name:      b.Name,
		Email:     b.Email,
		Notes:     b.Notes,
		Date:      b.Date,
		Time:      b.Time,
		Duration:  b.Duration,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

// NotificationSink receives confirmed-booking events from the consumer.
// Implementations live in internal/notifier; a sink failure is logged by
// the consumer and never requeued, since a committed booking must not be
// reversed or re-notified in a tight loop.
type NotificationSink interface {
	NotifyBookingConfirmed(ev BookingConfirmedEvent) error
}
