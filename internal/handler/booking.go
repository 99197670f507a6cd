package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/ics"
	"github.com/QASchoolUSA/QAXP-Booking/internal/ledger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/logger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
)

// BookingHandler exposes the commit path and the read views over
// committed bookings.  Publish is the fire-and-forget notification hook;
// it is invoked after a successful commit and its outcome never affects
// the response.  A nil Publish disables dispatch (tests, notifier-less
// deployments).
type BookingHandler struct {
	Ledger  *ledger.Ledger
	BaseURL string
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// Create handles POST /v1/bookings.  Field validation errors come back as
// 400 with inline guidance; a slot lost between display and submit is a
// 409 so the client re-renders availability; a store failure is a 500 the
// user can simply retry.
func (h *BookingHandler) Create(c echo.Context) error {
	var in model.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := in.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	booking, err := h.Ledger.Commit(c.Request().Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrSlotTaken):
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot no longer available, please pick another"})
		case errors.Is(err, ledger.ErrInvalidBooking):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save booking"})
		}
	}

	if h.Publish != nil {
		// The request context dies with the response; dispatch runs on its
		// own context and its failure is logged, never surfaced.
		ev := queue.NewBookingConfirmed(booking)
		go func() {
			if err := h.Publish(context.Background(), ev); err != nil {
				logger.Get().Warn("failed to publish booking confirmation",
					zap.String("booking_id", ev.BookingID), zap.Error(err))
			}
		}()
	}

	return c.JSON(http.StatusCreated, booking)
}

// List handles GET /v1/bookings and returns the committed set in
// insertion order.
func (h *BookingHandler) List(c echo.Context) error {
	bookings := h.Ledger.List(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// Invite handles GET /v1/bookings/:id/invite.ics and streams the
// iCalendar confirmation as a download.
func (h *BookingHandler) Invite(c echo.Context) error {
	booking, ok := h.find(c, c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	ev := icsEvent(booking)
	content, err := ics.Invite(ev, h.BaseURL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate invite"})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", ics.Filename(ev)))
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

// CalendarLinks handles GET /v1/bookings/:id/calendar-links and returns
// ready-made deep links for google/outlook/yahoo calendars.
func (h *BookingHandler) CalendarLinks(c echo.Context) error {
	booking, ok := h.find(c, c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	links, err := ics.CalendarLinks(icsEvent(booking), h.BaseURL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate links"})
	}
	return c.JSON(http.StatusOK, links)
}

func (h *BookingHandler) find(c echo.Context, id string) (model.Booking, bool) {
	for _, b := range h.Ledger.List(c.Request().Context()) {
		if b.ID == id {
			return b, true
		}
	}
	return model.Booking{}, false
}

func icsEvent(b model.Booking) ics.EventData {
	return ics.EventData{
		ID:       b.ID,
		Name:     b.Name,
		Email:    b.Email,
		Date:     b.Date,
		Time:     b.Time,
		Duration: b.Duration,
		Notes:    b.Notes,
	}
}
