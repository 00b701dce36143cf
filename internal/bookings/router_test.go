package bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"deskhive/internal/shared/identity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubBookingService struct{}

func (stubBookingService) GetAvailability(ctx context.Context, date, seatType string) ([]SeatAvailability, error) {
	return []SeatAvailability{}, nil
}

func (stubBookingService) CreateBookings(ctx context.Context, caller identity.CallerIdentity, req CreateBookingsRequest) ([]Booking, error) {
	return nil, nil
}

func (stubBookingService) CancelBooking(ctx context.Context, caller identity.CallerIdentity, bookingID uuid.UUID) error {
	return nil
}

func (stubBookingService) CancelGroup(ctx context.Context, caller identity.CallerIdentity, groupID uuid.UUID) (int64, error) {
	return 0, nil
}

func (stubBookingService) ListMyBookings(ctx context.Context, caller identity.CallerIdentity) ([]BookingView, error) {
	return nil, nil
}

func (stubBookingService) ListAllBookings(ctx context.Context, caller identity.CallerIdentity, from, to string) ([]Booking, error) {
	return nil, nil
}

func (stubBookingService) ListByDate(ctx context.Context, caller identity.CallerIdentity, date string) ([]Booking, error) {
	return nil, nil
}

func bookingTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupBookingRoutes(engine.Group("/api/v1"), NewController(stubBookingService{}))
	return engine
}

func TestAvailabilityRoute_NoTokenRequired(t *testing.T) {
	engine := bookingTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/availability?date=2026-09-10", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBookingRoutes_RequireToken(t *testing.T) {
	engine := bookingTestEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/me", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
