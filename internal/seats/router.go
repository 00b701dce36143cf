package seats

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupSeatRoutes configures all seat directory routes
func SetupSeatRoutes(rg *gin.RouterGroup, controller *Controller) {
	seats := rg.Group("/seats")
	seats.Use(middleware.JWTAuth())
	{
		seats.GET("", controller.ListSeats)

		admin := seats.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("", controller.CreateSeat)
			admin.PATCH("/batch-update", controller.BatchUpdatePlacements)
			admin.PATCH("/:id", controller.UpdateSeat)
			admin.PATCH("/:id/block", controller.BlockSeat)
			admin.DELETE("/:id", controller.DeleteSeat)
		}
	}
}
