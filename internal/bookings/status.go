package bookings

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsActive() bool {
	return s == StatusActive
}

// Slot is a bookable half-day unit, or FULL_DAY covering both halves.
type Slot string

const (
	SlotAM      Slot = "AM"
	SlotPM      Slot = "PM"
	SlotFullDay Slot = "FULL_DAY"
)

func (s Slot) IsValid() bool {
	switch s {
	case SlotAM, SlotPM, SlotFullDay:
		return true
	}
	return false
}

func (s Slot) String() string {
	return string(s)
}

// Overlaps reports whether two slots on the same seat and date collide.
// FULL_DAY collides with everything; AM and PM collide only with themselves.
func (s Slot) Overlaps(other Slot) bool {
	if s == SlotFullDay || other == SlotFullDay {
		return true
	}
	return s == other
}
