package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/QASchoolUSA/QAXP-Booking/internal/availability"
	"github.com/QASchoolUSA/QAXP-Booking/internal/ledger"
)

// defaultDurationMinutes is used when the caller does not specify a
// consultation length.
const defaultDurationMinutes = 30

// AvailabilityHandler serves the slot and date views of the booking
// calendar.  It asks the generator for raw candidates and the ledger for
// the overlap status of each one; the generator itself never sees what is
// booked.  Now is injectable so tests control "today"; when nil the wall
// clock is used.
type AvailabilityHandler struct {
	Ledger *ledger.Ledger
	Now    func() time.Time
}

func (h *AvailabilityHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// slotView is one candidate start time with its overlap status.
type slotView struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// GetSlots handles GET /v1/availability?date=YYYY-MM-DD&duration=N.  It
// returns every slot in the service window together with whether the slot
// is still free.  The availability flags are a snapshot; commit re-checks
// before writing, so a stale flag costs the user a retry, never a
// double-booking.
func (h *AvailabilityHandler) GetSlots(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be in YYYY-MM-DD format"})
	}
	duration := defaultDurationMinutes
	if s := c.QueryParam("duration"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must be a positive number of minutes"})
		}
		duration = n
	}

	ctx := c.Request().Context()
	slots := make([]slotView, 0)
	for _, t := range availability.Slots(date, duration) {
		taken, err := h.Ledger.IsOverlapping(ctx, date, t, duration)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to check availability"})
		}
		slots = append(slots, slotView{Time: t, Available: !taken})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":     date,
		"duration": duration,
		"slots":    slots,
	})
}

// GetDates handles GET /v1/availability/dates?month=YYYY-MM.  It lists
// the bookable dates of the requested month (today or later).  When the
// requested month lies entirely in the past the handler rolls over to the
// next month once, per the calendar navigation policy, and reports the
// month it actually used.
func (h *AvailabilityHandler) GetDates(c echo.Context) error {
	today := h.now()
	year, month := today.Year(), today.Month()
	if s := c.QueryParam("month"); s != "" {
		m, err := time.Parse("2006-01", s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be in YYYY-MM format"})
		}
		year, month = m.Year(), m.Month()
	}

	dates := availability.BookableDates(year, month, today)
	if len(dates) == 0 {
		year, month = availability.NextMonth(year, month)
		dates = availability.BookableDates(year, month, today)
	}
	if dates == nil {
		dates = []string{}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"month":       fmt.Sprintf("%04d-%02d", year, int(month)),
		"dates":       dates,
		"can_go_prev": availability.CanGoToPrevMonth(year, month, today),
	})
}
