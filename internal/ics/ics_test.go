package ics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QASchoolUSA/QAXP-Booking/internal/ics"
)

func sampleEvent() ics.EventData {
	return ics.EventData{
		ID:       "abc123",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
		Date:     "2025-06-10",
		Time:     "13:00",
		Duration: 30,
		Notes:    "prefers a phone call",
	}
}

func TestInvite(t *testing.T) {
	content, err := ics.Invite(sampleEvent(), "https://qaxp.com")
	require.NoError(t, err)

	assert.Contains(t, content, "BEGIN:VCALENDAR")
	assert.Contains(t, content, "END:VCALENDAR")
	assert.Contains(t, content, "SUMMARY:Consultation with Jane Doe")
	assert.Contains(t, content, "abc123@qaxp.com")
	assert.Contains(t, content, "STATUS:CONFIRMED")
	assert.Contains(t, content, "jane@example.com")

	t.Run("unparsable start time is an error", func(t *testing.T) {
		bad := sampleEvent()
		bad.Time = "25:99"
		_, err := ics.Invite(bad, "https://qaxp.com")
		require.Error(t, err)
	})
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "qaxp-booking-2025-06-10-1300.ics", ics.Filename(sampleEvent()))
}

func TestCalendarLinks(t *testing.T) {
	links, err := ics.CalendarLinks(sampleEvent(), "https://qaxp.com")
	require.NoError(t, err)

	assert.Contains(t, links.Google, "calendar.google.com/calendar/render")
	assert.Contains(t, links.Google, "dates=")
	assert.Contains(t, links.Google, "Consultation+with+Jane+Doe")
	assert.Contains(t, links.Outlook, "outlook.live.com")
	assert.Contains(t, links.Yahoo, "calendar.yahoo.com")

	t.Run("unparsable date is an error", func(t *testing.T) {
		bad := sampleEvent()
		bad.Date = "junk"
		_, err := ics.CalendarLinks(bad, "https://qaxp.com")
		require.Error(t, err)
	})
}
