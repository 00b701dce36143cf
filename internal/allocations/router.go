package allocations

import (
	"deskhive/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAllocationRoutes configures all allocation registry routes
func SetupAllocationRoutes(rg *gin.RouterGroup, controller *Controller) {
	allocations := rg.Group("/allocations")
	allocations.Use(middleware.JWTAuth())
	{
		allocations.POST("", controller.RequestAllocation)
		allocations.GET("", controller.ListAllocations)

		admin := allocations.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.POST("/:id/approve", controller.Approve)
			admin.POST("/:id/reject", controller.Reject)
		}
	}
}
