// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"deskhive/internal/allocations"
	"deskhive/internal/bookings"
	"deskhive/internal/seats"
	"deskhive/internal/shared/config"
	"deskhive/internal/shared/database"
	"deskhive/internal/users"
	"deskhive/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	notifier seats.Notifier
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, notifier seats.Notifier) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		notifier: notifier,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupDomainRoutes(api)
	}
}

// setupDomainRoutes wires repositories, services, and controllers. Cross-
// domain dependencies flow through narrow adapters so the seat directory
// never imports the booking store directly.
func (r *Router) setupDomainRoutes(rg *gin.RouterGroup) {
	pg := r.db.GetPostgreSQL()

	var cacheService cache.Service
	if r.db.GetRedis() != nil {
		cacheService = cache.NewService(r.db.GetRedis())
	}

	userRepo := users.NewRepository(pg)
	seatRepo := seats.NewRepository(pg)
	allocationRepo := allocations.NewRepository(pg)
	bookingRepo := bookings.NewRepository(pg)

	seatService := seats.NewService(seatRepo, userRepo, bookings.NewDirectoryAdapter(bookingRepo), r.notifier)
	seatController := seats.NewController(seatService)
	seats.SetupSeatRoutes(rg, seatController)

	allocationService := allocations.NewService(allocationRepo, allocations.NewSeatCheckerAdapter(seatRepo))
	allocationController := allocations.NewController(allocationService)
	allocations.SetupAllocationRoutes(rg, allocationController)

	bookingService := bookings.NewService(bookingRepo, seatRepo, allocationRepo, cacheService, r.config)
	bookingController := bookings.NewController(bookingService)
	bookings.SetupBookingRoutes(rg, bookingController)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "deskhive-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "deskhive-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
