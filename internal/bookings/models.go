package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a single seat reservation for one calendar day and slot.
// Cancelled rows are retained for history; the uniqueness invariant on
// (seat_id, booking_date, slot) applies to ACTIVE rows only and is enforced
// by a partial unique index (see shared/database/constraints.go).
type Booking struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	SeatID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"seat_id"`
	BookingDate time.Time  `gorm:"type:date;not null" json:"booking_date"`
	Slot        Slot       `gorm:"type:varchar(10);check:slot IN ('AM', 'PM', 'FULL_DAY');not null" json:"slot"`
	Status      Status     `gorm:"type:varchar(20);check:status IN ('ACTIVE', 'CANCELLED');default:'ACTIVE'" json:"status"`
	GroupID     *uuid.UUID `gorm:"type:uuid" json:"group_id,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

func (b *Booking) Cancel() {
	now := time.Now().UTC()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.UpdatedAt = now
}

// DisplayStatus is the status shown to users: CANCELLED rows stay CANCELLED,
// ACTIVE rows become COMPLETED once their day has passed.
type DisplayStatus string

const (
	DisplayConfirmed DisplayStatus = "CONFIRMED"
	DisplayCompleted DisplayStatus = "COMPLETED"
	DisplayCancelled DisplayStatus = "CANCELLED"
)

func (b *Booking) DisplayStatus(today time.Time) DisplayStatus {
	if b.Status == StatusCancelled {
		return DisplayCancelled
	}
	if b.BookingDate.Before(today) {
		return DisplayCompleted
	}
	return DisplayConfirmed
}
