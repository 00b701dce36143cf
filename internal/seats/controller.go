package seats

import (
	"net/http"

	"deskhive/internal/shared/identity"
	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListSeats handles GET /api/v1/seats
func (c *Controller) ListSeats(ctx *gin.Context) {
	seatType := ctx.Query("type")

	seats, err := c.service.ListSeats(ctx.Request.Context(), seatType)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seats retrieved successfully", seats)
}

// CreateSeat handles POST /api/v1/seats
func (c *Controller) CreateSeat(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seat, err := c.service.CreateSeat(ctx.Request.Context(), caller, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Seat created successfully", seat)
}

// UpdateSeat handles PATCH /api/v1/seats/:id
func (c *Controller) UpdateSeat(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	var req UpdateSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seat, err := c.service.UpdateSeat(ctx.Request.Context(), caller, seatID, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat updated successfully", seat)
}

// BatchUpdatePlacements handles PATCH /api/v1/seats/batch-update
func (c *Controller) BatchUpdatePlacements(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req BatchPlacementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.BatchUpdatePlacements(ctx.Request.Context(), caller, req); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat placements updated successfully", nil)
}

// BlockSeat handles PATCH /api/v1/seats/:id/block
func (c *Controller) BlockSeat(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	var req BlockSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	seat, err := c.service.SetBlocked(ctx.Request.Context(), caller, seatID, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat block state updated", seat)
}

// DeleteSeat handles DELETE /api/v1/seats/:id
func (c *Controller) DeleteSeat(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	seatID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid seat ID", nil, nil)
		return
	}

	if err := c.service.DeleteSeat(ctx.Request.Context(), caller, seatID); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Seat deleted successfully", nil)
}
