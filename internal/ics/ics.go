// Package ics turns a finalized booking into calendar artifacts: an
// iCalendar invite and deep links to third-party calendar services.  It is
// pure data transformation with no feedback into the booking ledger.
package ics

import (
	"fmt"
	"net/url"
	"time"

	ical "github.com/arran4/golang-ical"
)

// EventData is the booking-shaped record handed over by the caller.  Date
// and time are the same naive wall-clock strings stored on the booking.
type EventData struct {
	ID       string // booking ID, used as the event UID
	Name     string // customer name
	Email    string // customer email
	Date     string // YYYY-MM-DD
	Time     string // HH:mm
	Duration int    // minutes
	Notes    string // optional free text
}

// Links carries pre-built "add to calendar" URLs for popular services.
type Links struct {
	Google  string `json:"google"`
	Outlook string `json:"outlook"`
	Yahoo   string `json:"yahoo"`
}

const (
	organizerName  = "QAXP"
	organizerEmail = "no-reply@qaxp.com"
	eventLocation  = "Online Meeting"
)

// interval resolves the booking's start and end as local wall-clock times.
func interval(ev EventData) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", ev.Date+" "+ev.Time, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse booking start: %w", err)
	}
	return start, start.Add(time.Duration(ev.Duration) * time.Minute), nil
}

// Invite renders a downloadable VCALENDAR confirmation for the booking.
func Invite(ev EventData, baseURL string) (string, error) {
	start, end, err := interval(ev)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodRequest)
	cal.SetProductId("-//QAXP//Booking//EN")

	e := cal.AddEvent(fmt.Sprintf("%s@qaxp.com", ev.ID))
	e.SetDtStampTime(time.Now())
	e.SetStartAt(start)
	e.SetEndAt(end)
	e.SetSummary(fmt.Sprintf("Consultation with %s", ev.Name))
	e.SetDescription(description(ev))
	e.SetLocation(eventLocation)
	e.SetURL(baseURL)
	e.SetStatus(ical.ObjectStatusConfirmed)
	e.SetOrganizer(organizerEmail, ical.WithCN(organizerName))
	e.AddAttendee(ev.Email,
		ical.CalendarUserTypeIndividual,
		ical.ParticipationStatusNeedsAction,
		ical.ParticipationRoleReqParticipant,
		ical.WithRSVP(true),
	)

	return cal.Serialize(), nil
}

// Filename is the suggested download name for the invite, e.g.
// "qaxp-booking-2025-06-10-1300.ics".
func Filename(ev EventData) string {
	hhmm := ev.Time
	if len(hhmm) == 5 {
		hhmm = hhmm[:2] + hhmm[3:]
	}
	return fmt.Sprintf("qaxp-booking-%s-%s.ics", ev.Date, hhmm)
}

// CalendarLinks builds google/outlook/yahoo deep links for the booking.
// Timestamps are converted to compact UTC form, which is what all three
// services expect in their URL parameters.
func CalendarLinks(ev EventData, baseURL string) (Links, error) {
	start, end, err := interval(ev)
	if err != nil {
		return Links{}, err
	}
	const stamp = "20060102T150405Z"
	startUTC := start.UTC().Format(stamp)
	endUTC := end.UTC().Format(stamp)

	title := url.QueryEscape(fmt.Sprintf("Consultation with %s", ev.Name))
	desc := url.QueryEscape(description(ev))
	loc := url.QueryEscape(eventLocation)

	return Links{
		Google: fmt.Sprintf(
			"https://calendar.google.com/calendar/render?action=TEMPLATE&text=%s&dates=%s/%s&details=%s&location=%s",
			title, startUTC, endUTC, desc, loc),
		Outlook: fmt.Sprintf(
			"https://outlook.live.com/calendar/0/deeplink/compose?subject=%s&startdt=%s&enddt=%s&body=%s&location=%s",
			title, startUTC, endUTC, desc, loc),
		Yahoo: fmt.Sprintf(
			"https://calendar.yahoo.com/?v=60&view=d&type=20&title=%s&st=%s&et=%s&desc=%s&in_loc=%s",
			title, startUTC, endUTC, desc, loc),
	}, nil
}

func description(ev EventData) string {
	s := fmt.Sprintf("Meeting with %s", ev.Name)
	if ev.Notes != "" {
		s += fmt.Sprintf("\n\nNotes: %s", ev.Notes)
	}
	s += "\n\nThis is a confirmation for your scheduled consultation."
	return s
}
