package bookings

import (
	"testing"
	"time"

	"deskhive/internal/allocations"
	"deskhive/internal/seats"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeat(code string) seats.Seat {
	return seats.Seat{
		ID:       uuid.New(),
		SeatCode: code,
		Type:     seats.TypeSolo,
	}
}

func TestComputeAvailability_FreeSeat(t *testing.T) {
	seat := testSeat("S1")
	date := day(2026, 9, 7)

	result := ComputeAvailability([]seats.Seat{seat}, nil, nil, date)

	require.Len(t, result, 1)
	assert.True(t, result[0].Availability.AM)
	assert.True(t, result[0].Availability.PM)
	assert.True(t, result[0].Availability.FullDay)
}

func TestComputeAvailability_HalfDayBooked(t *testing.T) {
	seat := testSeat("S1")
	date := day(2026, 9, 7)

	bookings := []Booking{{
		ID:          uuid.New(),
		SeatID:      seat.ID,
		BookingDate: date,
		Slot:        SlotAM,
		Status:      StatusActive,
	}}

	result := ComputeAvailability([]seats.Seat{seat}, bookings, nil, date)

	require.Len(t, result, 1)
	assert.False(t, result[0].Availability.AM)
	assert.True(t, result[0].Availability.PM)
	// A full-day booking needs both halves free.
	assert.False(t, result[0].Availability.FullDay)
}

func TestComputeAvailability_FullDayBlocksBothSlots(t *testing.T) {
	seat := testSeat("S1")
	date := day(2026, 9, 7)

	bookings := []Booking{{
		ID:          uuid.New(),
		SeatID:      seat.ID,
		BookingDate: date,
		Slot:        SlotFullDay,
		Status:      StatusActive,
	}}

	result := ComputeAvailability([]seats.Seat{seat}, bookings, nil, date)

	require.Len(t, result, 1)
	assert.False(t, result[0].Availability.AM)
	assert.False(t, result[0].Availability.PM)
	assert.False(t, result[0].Availability.FullDay)
}

func TestComputeAvailability_CancelledBookingIgnored(t *testing.T) {
	seat := testSeat("S1")
	date := day(2026, 9, 7)

	cancelledAt := time.Now().UTC()
	bookings := []Booking{{
		ID:          uuid.New(),
		SeatID:      seat.ID,
		BookingDate: date,
		Slot:        SlotFullDay,
		Status:      StatusCancelled,
		CancelledAt: &cancelledAt,
	}}

	result := ComputeAvailability([]seats.Seat{seat}, bookings, nil, date)

	require.Len(t, result, 1)
	assert.True(t, result[0].Availability.FullDay)
}

func TestComputeAvailability_AllocatedSeatDropped(t *testing.T) {
	allocated := testSeat("S1")
	free := testSeat("S2")
	date := day(2026, 9, 7)

	approved := []allocations.LongTermAllocation{{
		ID:        uuid.New(),
		SeatID:    allocated.ID,
		StartDate: day(2026, 9, 1),
		EndDate:   day(2026, 9, 30),
		Status:    allocations.StatusApproved,
	}}

	result := ComputeAvailability([]seats.Seat{allocated, free}, nil, approved, date)

	require.Len(t, result, 1)
	assert.Equal(t, "S2", result[0].SeatCode)
}

func TestComputeAvailability_AllocationOutsideRangeKeepsSeat(t *testing.T) {
	seat := testSeat("S1")
	date := day(2026, 9, 7)

	approved := []allocations.LongTermAllocation{{
		ID:        uuid.New(),
		SeatID:    seat.ID,
		StartDate: day(2026, 10, 1),
		EndDate:   day(2026, 10, 31),
		Status:    allocations.StatusApproved,
	}}

	result := ComputeAvailability([]seats.Seat{seat}, nil, approved, date)

	require.Len(t, result, 1)
	assert.True(t, result[0].Availability.FullDay)
}
