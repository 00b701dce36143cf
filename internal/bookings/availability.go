package bookings

import (
	"time"

	"deskhive/internal/allocations"
	"deskhive/internal/seats"

	"github.com/google/uuid"
)

// ComputeAvailability folds blocked-seat filtering, approved long-term
// allocations, and the day's ACTIVE bookings into per-seat slot booleans.
// Pure: no storage access, no side effects.
//
// Seats covered by an approved allocation containing the date are dropped
// from the output entirely; long-term-assigned desks are never offered for
// ad-hoc booking. The input seat list is expected to be pre-filtered to
// non-blocked seats.
func ComputeAvailability(seatList []seats.Seat, dayBookings []Booking, approved []allocations.LongTermAllocation, date time.Time) []SeatAvailability {
	allocatedSeats := make(map[uuid.UUID]struct{}, len(approved))
	for i := range approved {
		if approved[i].Contains(date) {
			allocatedSeats[approved[i].SeatID] = struct{}{}
		}
	}

	bookingsBySeat := make(map[uuid.UUID][]Booking, len(dayBookings))
	for _, b := range dayBookings {
		if !b.IsActive() {
			continue
		}
		bookingsBySeat[b.SeatID] = append(bookingsBySeat[b.SeatID], b)
	}

	result := make([]SeatAvailability, 0, len(seatList))
	for _, seat := range seatList {
		if _, allocated := allocatedSeats[seat.ID]; allocated {
			continue
		}

		amBooked := false
		pmBooked := false
		for _, b := range bookingsBySeat[seat.ID] {
			if b.Slot == SlotAM || b.Slot == SlotFullDay {
				amBooked = true
			}
			if b.Slot == SlotPM || b.Slot == SlotFullDay {
				pmBooked = true
			}
		}

		result = append(result, SeatAvailability{
			ID:         seat.ID,
			SeatCode:   seat.SeatCode,
			Type:       seat.Type.String(),
			HasMonitor: seat.HasMonitor,
			IsBlocked:  seat.IsBlocked,
			X:          seat.X,
			Y:          seat.Y,
			Availability: SlotAvailability{
				AM:      !amBooked,
				PM:      !pmBooked,
				FullDay: !amBooked && !pmBooked,
			},
		})
	}

	return result
}
