package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/QASchoolUSA/QAXP-Booking/internal/handler"
)

// RegisterRoutes registers routes that exist outside the versioned API on
// the provided Echo instance.  Currently it exposes only a health check,
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the booking API under /v1.  Availability reads
// are unrestricted; the commit endpoint carries the rate limiter so one
// client cannot hammer the slot-grab path.  There is no authentication
// anywhere: anyone may view slots and book one.
func RegisterAPI(e *echo.Echo, ah *handler.AvailabilityHandler, bh *handler.BookingHandler, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/v1")

	// Availability views: raw candidates paired with their overlap status,
	// and the bookable dates of a month.
	g.GET("/availability", ah.GetSlots)
	g.GET("/availability/dates", ah.GetDates)

	// Booking commit and read views.
	g.POST("/bookings", bh.Create, rateLimit)
	g.GET("/bookings", bh.List)

	// Calendar artifacts for a committed booking.
	g.GET("/bookings/:id/invite.ics", bh.Invite)
	g.GET("/bookings/:id/calendar-links", bh.CalendarLinks)
}
