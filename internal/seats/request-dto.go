package seats

type CreateSeatRequest struct {
	SeatCode   string   `json:"seat_code" binding:"required,min=1,max=16"`
	Type       string   `json:"type" binding:"required,oneof=SOLO TEAM_CLUSTER"`
	HasMonitor bool     `json:"has_monitor"`
	X          *float64 `json:"x" binding:"omitempty,min=0,max=100"`
	Y          *float64 `json:"y" binding:"omitempty,min=0,max=100"`
}

type UpdateSeatRequest struct {
	SeatCode   *string  `json:"seat_code" binding:"omitempty,min=1,max=16"`
	Type       *string  `json:"type" binding:"omitempty,oneof=SOLO TEAM_CLUSTER"`
	HasMonitor *bool    `json:"has_monitor"`
	X          *float64 `json:"x" binding:"omitempty,min=0,max=100"`
	Y          *float64 `json:"y" binding:"omitempty,min=0,max=100"`
}

type BlockSeatRequest struct {
	IsBlocked     bool   `json:"is_blocked"`
	BlockedReason string `json:"blocked_reason" binding:"omitempty,max=500"`
}

type SeatPlacement struct {
	ID string   `json:"id" binding:"required,uuid"`
	X  *float64 `json:"x" binding:"omitempty,min=0,max=100"`
	Y  *float64 `json:"y" binding:"omitempty,min=0,max=100"`
}

type BatchPlacementRequest struct {
	Seats []SeatPlacement `json:"seats" binding:"required,min=1,max=200,dive"`
}
