package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/QASchoolUSA/QAXP-Booking/internal/handler"
	"github.com/QASchoolUSA/QAXP-Booking/internal/ledger"
	"github.com/QASchoolUSA/QAXP-Booking/internal/model"
	"github.com/QASchoolUSA/QAXP-Booking/internal/queue"
	"github.com/QASchoolUSA/QAXP-Booking/internal/store"
)

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	return ledger.New(store.NewMemoryStore(), zap.NewNop())
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func getPath(e *echo.Echo, path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

const validBody = `{"name":"Jane Doe","email":"jane@example.com","date":"2025-06-10","time":"13:00","duration":30}`

func TestCreateBooking(t *testing.T) {
	e := echo.New()

	t.Run("valid booking is committed and published", func(t *testing.T) {
		published := make(chan queue.BookingConfirmedEvent, 1)
		h := &handler.BookingHandler{
			Ledger:  newTestLedger(t),
			BaseURL: "https://qaxp.com",
			Publish: func(ctx context.Context, ev queue.BookingConfirmedEvent) error {
				published <- ev
				return nil
			},
		}

		c, rec := postJSON(e, "/v1/bookings", validBody)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		var booking model.Booking
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &booking))
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, "Jane Doe", booking.Name)
		assert.False(t, booking.CreatedAt.IsZero())

		select {
		case ev := <-published:
			assert.Equal(t, booking.ID, ev.BookingID)
			assert.Equal(t, "2025-06-10", ev.Date)
		case <-time.After(time.Second):
			t.Fatal("confirmation event was not published")
		}
	})

	t.Run("taken slot is a conflict", func(t *testing.T) {
		h := &handler.BookingHandler{Ledger: newTestLedger(t)}

		c, rec := postJSON(e, "/v1/bookings", validBody)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code)

		c, rec = postJSON(e, "/v1/bookings", validBody)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusConflict, rec.Code)

		listed := h.Ledger.List(context.Background())
		assert.Len(t, listed, 1, "rejected commit must not grow the store")
	})

	t.Run("invalid email is a bad request", func(t *testing.T) {
		h := &handler.BookingHandler{Ledger: newTestLedger(t)}
		body := strings.Replace(validBody, "jane@example.com", "not-an-address", 1)
		c, rec := postJSON(e, "/v1/bookings", body)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero duration is a bad request", func(t *testing.T) {
		h := &handler.BookingHandler{Ledger: newTestLedger(t)}
		body := strings.Replace(validBody, `"duration":30`, `"duration":0`, 1)
		c, rec := postJSON(e, "/v1/bookings", body)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, h.Ledger.List(context.Background()))
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		h := &handler.BookingHandler{Ledger: newTestLedger(t)}
		c, rec := postJSON(e, "/v1/bookings", `{"name":`)
		require.NoError(t, h.Create(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListBookings(t *testing.T) {
	e := echo.New()
	h := &handler.BookingHandler{Ledger: newTestLedger(t)}

	c, rec := postJSON(e, "/v1/bookings", validBody)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = getPath(e, "/v1/bookings")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Bookings []model.Booking `json:"bookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Jane Doe", resp.Bookings[0].Name)
}

func TestCalendarEndpoints(t *testing.T) {
	e := echo.New()
	h := &handler.BookingHandler{Ledger: newTestLedger(t), BaseURL: "https://qaxp.com"}

	booking, err := h.Ledger.Commit(context.Background(), model.BookingInput{
		Name: "Jane Doe", Email: "jane@example.com",
		Date: "2025-06-10", Time: "13:00", Duration: 30,
	})
	require.NoError(t, err)

	t.Run("invite download", func(t *testing.T) {
		c, rec := getPath(e, "/v1/bookings/"+booking.ID+"/invite.ics")
		c.SetParamNames("id")
		c.SetParamValues(booking.ID)
		require.NoError(t, h.Invite(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/calendar")
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".ics")
		assert.Contains(t, rec.Body.String(), "BEGIN:VCALENDAR")
	})

	t.Run("calendar links", func(t *testing.T) {
		c, rec := getPath(e, "/v1/bookings/"+booking.ID+"/calendar-links")
		c.SetParamNames("id")
		c.SetParamValues(booking.ID)
		require.NoError(t, h.CalendarLinks(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var links struct {
			Google  string `json:"google"`
			Outlook string `json:"outlook"`
			Yahoo   string `json:"yahoo"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &links))
		assert.Contains(t, links.Google, "calendar.google.com")
		assert.NotEmpty(t, links.Outlook)
		assert.NotEmpty(t, links.Yahoo)
	})

	t.Run("unknown booking is not found", func(t *testing.T) {
		c, rec := getPath(e, "/v1/bookings/nope/invite.ics")
		c.SetParamNames("id")
		c.SetParamValues("nope")
		require.NoError(t, h.Invite(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
