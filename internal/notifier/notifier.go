// Package notifier delivers booking confirmations to the customer and the
// operator.  Implementations satisfy queue.NotificationSink so the broker
// consumer can drive whichever transport is configured.
package notifier

import (
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/logger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
)

// ConsoleNotifier logs confirmations instead of sending them.  It is the
// fallback when SMTP is not configured, so a local setup still shows what
// would have been sent.
type ConsoleNotifier struct {
	log *zap.Logger
}

// NewConsole returns a console notifier.
func NewConsole() *ConsoleNotifier {
	return &ConsoleNotifier{log: logger.Get()}
}

// NotifyBookingConfirmed logs the confirmation and always succeeds.
func (c *ConsoleNotifier) NotifyBookingConfirmed(ev queue.BookingConfirmedEvent) error {
	c.log.Info("booking confirmation (console)",
		zap.String("booking_id", ev.BookingID),
		zap.String("name", ev.Name),
		zap.String("email", ev.Email),
		zap.String("date", ev.Date),
		zap.String("time", ev.Time),
		zap.Int("duration", ev.Duration),
	)
	return nil
}
