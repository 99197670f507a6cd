package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/logger"
)

// StartNotificationConsumer connects to RabbitMQ, declares the durable
// booking.confirmed queue, and consumes confirmation events.  Each event
// is appended to logs/booking.log as an audit line and handed to the sink
// for delivery.  The function runs a reconnect loop with capped backoff
// and keeps running across broker restarts; it only returns on
// programmer-level misuse (nil sink).
func StartNotificationConsumer(sink NotificationSink) error {
	if sink == nil {
		return errors.New("nil notification sink")
	}
	log := logger.Get()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(amqpURL())
		if err != nil {
			log.Warn("failed to dial broker, retrying",
				zap.Error(err), zap.Duration("backoff", backoff))
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn, sink, log); err != nil {
			log.Warn("consume loop ended, reconnecting", zap.Error(err))
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection, sink NotificationSink, log *zap.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(20, 0, false); err != nil {
		log.Warn("set QoS failed", zap.Error(err))
	}

	if _, err := ch.QueueDeclare(bookingQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(bookingQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		var ev BookingConfirmedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			log.Warn("unparsable booking event, dropping", zap.Error(err))
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		if err := appendAuditLine(ev); err != nil {
			log.Warn("failed to write audit line", zap.Error(err))
		}
		// Dispatch failure is logged and the message is still acked: the
		// booking stays committed and the operator can follow up from the
		// audit log instead of the queue redelivering forever.
		if err := sink.NotifyBookingConfirmed(ev); err != nil {
			log.Warn("notification dispatch failed",
				zap.String("booking_id", ev.BookingID), zap.Error(err))
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// appendAuditLine records the confirmation in logs/booking.log in a
// single-line, human-friendly format.
func appendAuditLine(ev BookingConfirmedEvent) error {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	fpath := filepath.Join("logs", "booking.log")
	f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("[%s] Booking confirmed | id=%s | name=%q | email=%s | date=%s | time=%s | duration=%d min\n",
		ev.CreatedAt, ev.BookingID, ev.Name, ev.Email, ev.Date, ev.Time, ev.Duration)

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
