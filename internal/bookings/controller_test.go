package bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingService struct {
	err error
}

func (s *stubBookingService) Create(_ context.Context, _ string, _ CreateBookingRequest) (*Booking, error) {
	return nil, s.err
}

func (s *stubBookingService) Cancel(_ context.Context, _, _ string) (*Booking, error) {
	return nil, s.err
}

func (s *stubBookingService) GetByID(_ context.Context, _, _ string) (*Booking, error) {
	return nil, s.err
}

func (s *stubBookingService) ListByUser(_ context.Context, _ string) ([]Booking, error) {
	return nil, s.err
}

func (s *stubBookingService) ListBookedSeats(_ context.Context, _ string) ([]string, error) {
	return nil, s.err
}

func bookingTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	auth := func(c *gin.Context) {
		c.Set("user_id", "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
		c.Next()
	}

	SetupBookingRoutes(&engine.RouterGroup, NewController(svc), auth)
	return engine
}

func TestGetBookingHidesInternalErrorDetail(t *testing.T) {
	svc := &stubBookingService{err: errors.New("pq: password authentication failed for user admin")}
	router := bookingTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/bookings/some-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
	assert.NotContains(t, rec.Body.String(), "password", "driver detail must not reach the client")
}

func TestGetBookingMapsKnownErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		method     string
		path       string
		wantStatus int
	}{
		{"not found", ErrNotFound, http.MethodGet, "/bookings/some-id", http.StatusNotFound},
		{"forbidden", ErrForbidden, http.MethodGet, "/bookings/some-id", http.StatusForbidden},
		{"already cancelled", ErrAlreadyCancelled, http.MethodPost, "/bookings/some-id/cancel", http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := bookingTestRouter(&stubBookingService{err: tc.err})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}
