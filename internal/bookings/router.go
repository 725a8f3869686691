package bookings

import (
	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures booking endpoints. Seat availability per
// schedule is public; everything else requires authentication.
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	rg.GET("/schedules/:id/bookings", controller.ListBookedSeats)

	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("", controller.CreateBooking)
		bookings.GET("/:id", controller.GetBooking)
		bookings.POST("/:id/cancel", controller.CancelBooking)
	}

	users := rg.Group("/users")
	users.Use(auth)
	{
		users.GET("/bookings", controller.ListUserBookings)
	}
}
