package allocations

import (
	"time"

	"github.com/google/uuid"
)

// LongTermAllocation is an admin-approved long-term seat reservation spanning
// an inclusive date range. Only APPROVED ranges pre-empt ad-hoc booking.
type LongTermAllocation struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"seat_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	StartDate time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time  `gorm:"type:date;not null" json:"end_date"`
	Status    Status     `gorm:"type:varchar(20);check:status IN ('PENDING', 'APPROVED', 'REJECTED');default:'PENDING'" json:"status"`
	DecidedBy *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name for LongTermAllocation
func (LongTermAllocation) TableName() string {
	return "long_term_allocations"
}

// Contains reports whether the allocation's inclusive date range covers day.
func (a *LongTermAllocation) Contains(day time.Time) bool {
	return !day.Before(a.StartDate) && !day.After(a.EndDate)
}

// IsDecided reports whether the allocation has left the PENDING state.
// Decided allocations are immutable; changes require a new request.
func (a *LongTermAllocation) IsDecided() bool {
	return a.Status != StatusPending
}
