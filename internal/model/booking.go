package model

import (
	"errors"
	"regexp"
	"time"
)

// Booking is a committed consultation reservation.  A booking is created
// exactly once, never mutated afterwards, and persists until the store is
// cleared.  Date and time are naive local wall-clock values; no timezone
// is attached to either field.
//
// Fields:
//  ID        – opaque unique identifier, assigned at commit time.
//  Name      – customer name as entered in the booking form.
//  Email     – customer contact address.
//  Notes     – optional free text from the customer.
//  Date      – calendar date in YYYY-MM-DD form.
//  Time      – start time of day in HH:mm form, minute granularity.
//  Duration  – length of the consultation in minutes, always positive.
//  CreatedAt – commit timestamp, stamped by the ledger, never client-supplied.
type Booking struct {
	ID        string    `json:"id"`        // assigned at commit
	Name      string    `json:"name"`      // customer name
	Email     string    `json:"email"`     // customer email
	Notes     string    `json:"notes"`     // optional free text
	Date      string    `json:"date"`      // YYYY-MM-DD
	Time      string    `json:"time"`      // HH:mm (24-hour)
	Duration  int       `json:"duration"`  // minutes
	CreatedAt time.Time `json:"createdAt"` // stamped by the ledger
}

// BookingInput carries the client-supplied fields of a booking request.
// ID and CreatedAt are intentionally absent; both are owned by the ledger.
type BookingInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Duration int    `json:"duration"`
}

// emailPattern is the basic address-shape check applied before a commit is
// attempted: something before the @, something after it, and a dot in the
// domain part.  Full RFC 5322 validation is out of scope.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the input satisfies the preconditions for a commit.
// It returns the first violation found so the caller can surface a single
// actionable message to the user.
func (in BookingInput) Validate() error {
	if in.Name == "" {
		return errors.New("name is required")
	}
	if !emailPattern.MatchString(in.Email) {
		return errors.New("email is not a valid address")
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", in.Time); err != nil {
		return errors.New("time must be in HH:mm format")
	}
	if in.Duration <= 0 {
		return errors.New("duration must be a positive number of minutes")
	}
	return nil
}
