package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
)

func TestBuildMessage(t *testing.T) {
	t.Run("with invite attachment", func(t *testing.T) {
		msg, err := buildMessage("no-reply@qaxp.com", "jane@example.com",
			"Booking Confirmed - QAXP", "hello", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
		require.NoError(t, err)

		s := string(msg)
		assert.Contains(t, s, "From: no-reply@qaxp.com")
		assert.Contains(t, s, "To: jane@example.com")
		assert.Contains(t, s, "Subject: Booking Confirmed - QAXP")
		assert.Contains(t, s, "multipart/mixed")
		assert.Contains(t, s, "text/plain")
		assert.Contains(t, s, "text/calendar")
		assert.Contains(t, s, `filename="invite.ics"`)
	})

	t.Run("without invite there is no attachment", func(t *testing.T) {
		msg, err := buildMessage("no-reply@qaxp.com", "jane@example.com", "Subject", "hello", "")
		require.NoError(t, err)
		assert.NotContains(t, string(msg), "invite.ics")
	})
}

func TestBodies(t *testing.T) {
	ev := queue.BookingConfirmedEvent{
		BookingID: "abc123",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Notes:     "prefers a phone call",
		Date:      "2025-06-10",
		Time:      "13:00",
		Duration:  30,
	}

	customer := customerBody(ev)
	assert.Contains(t, customer, "Dear Jane Doe")
	assert.Contains(t, customer, "2025-06-10")
	assert.Contains(t, customer, "30 minutes")

	operator := operatorBody(ev)
	assert.Contains(t, operator, "Jane Doe <jane@example.com>")
	assert.Contains(t, operator, "abc123")
	assert.Contains(t, operator, "prefers a phone call")
}
