package bookings

import (
	"time"

	"github.com/google/uuid"
)

// SlotAvailability reports bookable slots for one seat on one date.
type SlotAvailability struct {
	AM      bool `json:"AM"`
	PM      bool `json:"PM"`
	FullDay bool `json:"FULL_DAY"`
}

// SeatAvailability is one row of the availability query output.
type SeatAvailability struct {
	ID           uuid.UUID        `json:"id"`
	SeatCode     string           `json:"seat_code"`
	Type         string           `json:"type"`
	HasMonitor   bool             `json:"has_monitor"`
	IsBlocked    bool             `json:"is_blocked"`
	X            *float64         `json:"x,omitempty"`
	Y            *float64         `json:"y,omitempty"`
	Availability SlotAvailability `json:"availability"`
}

// BookingView decorates a booking row with its user-facing display status.
type BookingView struct {
	Booking
	DisplayStatus DisplayStatus `json:"display_status"`
}

// NewBookingView derives the display status relative to today.
func NewBookingView(b Booking, today time.Time) BookingView {
	return BookingView{
		Booking:       b,
		DisplayStatus: b.DisplayStatus(today),
	}
}
