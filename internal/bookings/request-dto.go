package bookings

type BookingSelection struct {
	SeatID      string `json:"seat_id" validate:"required,uuid"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	Slot        string `json:"slot" validate:"required,oneof=AM PM FULL_DAY"`
}

type RecurrenceRequest struct {
	Type  string `json:"type" validate:"required,oneof=DAILY WEEKLY"`
	Until string `json:"until" validate:"required,datetime=2006-01-02"`
}

type CreateBookingsRequest struct {
	Bookings      []BookingSelection `json:"bookings" validate:"required,min=1,dive"`
	GroupBookings bool               `json:"group_bookings"`
	Recurrence    *RecurrenceRequest `json:"recurrence" validate:"omitempty"`
}
