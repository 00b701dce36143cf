package bookings

import (
	"net/http"

	"deskhive/internal/shared/identity"
	"deskhive/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// GetAvailability handles GET /api/v1/bookings/availability
func (c *Controller) GetAvailability(ctx *gin.Context) {
	date := ctx.Query("date")
	seatType := ctx.Query("type")

	result, err := c.service.GetAvailability(ctx.Request.Context(), date, seatType)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Availability retrieved successfully", result)
}

// CreateBookings handles POST /api/v1/bookings
func (c *Controller) CreateBookings(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateBookingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	created, err := c.service.CreateBookings(ctx.Request.Context(), caller, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Bookings created successfully", created)
}

// ListMyBookings handles GET /api/v1/bookings/me
func (c *Controller) ListMyBookings(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	views, err := c.service.ListMyBookings(ctx.Request.Context(), caller)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", views)
}

// CancelBooking handles DELETE /api/v1/bookings/:id
func (c *Controller) CancelBooking(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid booking ID", nil, nil)
		return
	}

	if err := c.service.CancelBooking(ctx.Request.Context(), caller, bookingID); err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking cancelled successfully", nil)
}

// CancelGroup handles DELETE /api/v1/bookings/group/:groupId
func (c *Controller) CancelGroup(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	groupID, err := uuid.Parse(ctx.Param("groupId"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid group ID", nil, nil)
		return
	}

	cancelled, err := c.service.CancelGroup(ctx.Request.Context(), caller, groupID)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Booking group cancelled successfully", gin.H{
		"cancelled_count": cancelled,
	})
}

// ListAllBookings handles GET /api/v1/bookings (admin)
func (c *Controller) ListAllBookings(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	rows, err := c.service.ListAllBookings(ctx.Request.Context(), caller, ctx.Query("start_date"), ctx.Query("end_date"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", rows)
}

// ListByDate handles GET /api/v1/bookings/date/:date (admin)
func (c *Controller) ListByDate(ctx *gin.Context) {
	caller, ok := identity.FromContext(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	rows, err := c.service.ListByDate(ctx.Request.Context(), caller, ctx.Param("date"))
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", rows)
}
