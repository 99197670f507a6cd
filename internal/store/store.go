// Package store defines the persistence boundary for committed bookings.
// The booking set is read and written as one collection under a single
// well-known key; there is no partial-record update, every write replaces
// the whole set.  The ledger receives a Store by injection and never
// touches a backend directly.
package store

import (
	"context"

	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
)

// BookingsKey is the fixed key under which the full booking set lives in
// keyed backends (Redis, MySQL blob table).  The file backend encodes the
// same collection as the whole file content.
const BookingsKey = "qaxp:bookings"

// Store is the contract the ledger depends on.  Load returns the complete
// current booking set; SaveAll atomically replaces it.  Implementations
// must never leave a partially written set behind a failed SaveAll.
type Store interface {
	Load(ctx context.Context) ([]model.Booking, error)
	SaveAll(ctx context.Context, bookings []model.Booking) error
}
