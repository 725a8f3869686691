package payments

import (
	"github.com/gin-gonic/gin"
)

// SetupPaymentRoutes configures payment endpoints. The webhook is called by
// the gateway, not a browser session, so it skips user authentication and is
// verified by its callback token instead. The simulate endpoint only exists
// outside production.
func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc, allowSimulate bool) {
	payments := rg.Group("/payments")
	{
		payments.POST("/webhook", controller.HandleWebhook)
		if allowSimulate {
			payments.POST("/simulate-webhook", controller.SimulateWebhook)
		}

		authed := payments.Group("")
		authed.Use(auth)
		authed.POST("", controller.CreatePayment)
	}

	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.GET("/:id/payment", controller.GetPaymentForBooking)
	}
}
