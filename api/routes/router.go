// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"tiketbus/internal/bookings"
	"tiketbus/internal/buses"
	"tiketbus/internal/payments"
	busroutes "tiketbus/internal/routes"
	"tiketbus/internal/schedules"
	"tiketbus/internal/shared/config"
	"tiketbus/internal/shared/database"
	"tiketbus/internal/shared/middleware"
	"tiketbus/internal/tickets"
	"tiketbus/internal/users"
	"tiketbus/pkg/xendit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB

	// Services shared across feature routers
	scheduleService schedules.Service
	bookingRepo     bookings.Repository
	bookingService  bookings.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB) *Router {
	return &Router{
		config: cfg,
		db:     db,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	auth := middleware.JWTAuthWithConfig(r.config)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupRouteRoutes(api)

		// Schedules must come before bookings: the booking flow consumes
		// the schedule service for candidate materialization.
		r.setupScheduleRoutes(api)
		r.setupBookingRoutes(api, auth)
		r.setupPaymentRoutes(api, auth)
		r.setupTicketRoutes(api, auth)
		r.setupUserRoutes(api, auth)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "tiketbus-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "tiketbus-backend",
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
			"status":             "operational",
			"api_version":        r.config.APIVersion,
			"payments_available": r.config.PaymentsConfigured(),
			"timestamp":          time.Now(),
		})
	})
}

// setupRouteRoutes configures route search endpoints
func (r *Router) setupRouteRoutes(rg *gin.RouterGroup) {
	routeRepo := busroutes.NewRepository(r.db.GetPostgreSQL())
	routeController := busroutes.NewController(routeRepo)

	busroutes.SetupRouteRoutes(rg, routeController)
}

// setupScheduleRoutes configures schedule search and materialization
func (r *Router) setupScheduleRoutes(rg *gin.RouterGroup) {
	scheduleRepo := schedules.NewRepository(r.db.GetPostgreSQL())
	busRepo := buses.NewRepository(r.db.GetPostgreSQL())
	routeRepo := busroutes.NewRepository(r.db.GetPostgreSQL())

	r.scheduleService = schedules.NewService(scheduleRepo, busRepo, routeRepo, schedules.SystemClock())
	scheduleController := schedules.NewController(r.scheduleService)

	schedules.SetupScheduleRoutes(rg, scheduleController)
}

// setupBookingRoutes configures booking management routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	r.bookingRepo = bookings.NewRepository(r.db.GetPostgreSQL())
	r.bookingService = bookings.NewService(r.bookingRepo, r.scheduleService)
	bookingController := bookings.NewController(r.bookingService)

	bookings.SetupBookingRoutes(rg, bookingController, auth)
}

// setupPaymentRoutes configures the gateway invoice and webhook routes
func (r *Router) setupPaymentRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	paymentRepo := payments.NewRepository(r.db.GetPostgreSQL())
	gatewayClient := xendit.NewClient(xendit.Config{
		SecretKey: r.config.Xendit.SecretKey,
		APIURL:    r.config.Xendit.APIURL,
	})

	paymentService := payments.NewService(paymentRepo, r.bookingRepo, gatewayClient, payments.Options{
		AppURL:       r.config.AppURL,
		WebhookToken: r.config.Xendit.WebhookToken,
		Production:   r.config.IsProduction(),
	})
	paymentController := payments.NewController(paymentService)

	payments.SetupPaymentRoutes(rg, paymentController, auth, !r.config.IsProduction())
}

// setupTicketRoutes configures e-ticket downloads
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	ticketService := tickets.NewService(r.bookingRepo)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController, auth)
}

// setupUserRoutes configures user profile endpoints
func (r *Router) setupUserRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userController := users.NewController(userRepo)

	users.SetupUserRoutes(rg, userController, auth)
}
