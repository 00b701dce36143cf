package bookings

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Availability is a read-only public view; no token required.
	rg.GET("/bookings/availability", controller.GetAvailability)

	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.POST("", controller.CreateBookings)
		bookings.GET("/me", controller.ListMyBookings)
		bookings.DELETE("/:id", controller.CancelBooking)
		bookings.DELETE("/group/:groupId", controller.CancelGroup)

		admin := bookings.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("", controller.ListAllBookings)
			admin.GET("/date/:date", controller.ListByDate)
		}
	}
}
