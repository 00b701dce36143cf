package allocations

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

// RequestAllocation handles POST /api/v1/allocations
func (c *Controller) RequestAllocation(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateAllocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	allocation, err := c.service.RequestAllocation(ctx.Request.Context(), caller, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Allocation requested successfully", allocation)
}

// ListAllocations handles GET /api/v1/allocations
func (c *Controller) ListAllocations(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	allocations, err := c.service.ListAllocations(ctx.Request.Context(), caller)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Allocations retrieved successfully", allocations)
}

// Approve handles POST /api/v1/allocations/:id/approve
func (c *Controller) Approve(ctx *gin.Context) {
	c.decide(ctx, true)
}

// Reject handles POST /api/v1/allocations/:id/reject
func (c *Controller) Reject(ctx *gin.Context) {
	c.decide(ctx, false)
}

func (c *Controller) decide(ctx *gin.Context, approve bool) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	allocationID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid allocation ID", nil, nil)
		return
	}

	var allocation *LongTermAllocation
	if approve {
		allocation, err = c.service.Approve(ctx.Request.Context(), caller, allocationID)
	} else {
		allocation, err = c.service.Reject(ctx.Request.Context(), caller, allocationID)
	}
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Allocation decision recorded", allocation)
}
