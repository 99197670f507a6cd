// Package ledger owns the authoritative list of committed bookings and
// guarantees the no-overlap invariant at commit time.  The sentinel values
// below let handlers map failures onto HTTP responses with errors.Is
// instead of string matching.
package ledger

import "errors"

// ErrSlotTaken is returned by Commit when the requested slot overlaps an
// existing booking at the moment of the final pre-write check.  Handlers
// should translate this into an HTTP 409 and prompt the user to pick
// another slot.
var ErrSlotTaken = errors.New("slot no longer available")

// ErrPersistence is returned when the store cannot be read or written
// during a commit.  The booking set is left unmodified; the user may
// simply retry.
var ErrPersistence = errors.New("persistence failure")

// ErrInvalidBooking is returned by Commit when the input fails validation.
// The ledger re-checks the fields even though handlers validate first, so
// data integrity never rests on a single collaborator.
var ErrInvalidBooking = errors.New("invalid booking")
