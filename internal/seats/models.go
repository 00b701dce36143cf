package seats

import (
	"time"

	"github.com/google/uuid"
)

type SeatType string

const (
	TypeSolo        SeatType = "SOLO"
	TypeTeamCluster SeatType = "TEAM_CLUSTER"
)

func (t SeatType) IsValid() bool {
	switch t {
	case TypeSolo, TypeTeamCluster:
		return true
	}
	return false
}

func (t SeatType) String() string {
	return string(t)
}

// Seat defines the structure for individual desks on the floor plan
type Seat struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatCode      string    `gorm:"uniqueIndex;not null" json:"seat_code"`
	Type          SeatType  `gorm:"type:varchar(20);check:type IN ('SOLO', 'TEAM_CLUSTER');default:'SOLO'" json:"type"`
	HasMonitor    bool      `gorm:"not null;default:false" json:"has_monitor"`
	IsBlocked     bool      `gorm:"not null;default:false;index" json:"is_blocked"`
	BlockedReason *string   `json:"blocked_reason,omitempty"`
	// Placement on the floor-plan image, as percentages. Nil until an admin
	// places the seat.
	X         *float64  `json:"x,omitempty"`
	Y         *float64  `json:"y,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsPlaced() bool {
	return s.X != nil && s.Y != nil
}
