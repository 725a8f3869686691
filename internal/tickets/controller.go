package tickets

import (
	"errors"
	"fmt"
	"net/http"

	"tiketbus/internal/bookings"
	"tiketbus/internal/shared/middleware"
	"tiketbus/internal/shared/utils/response"
	"tiketbus/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{service: service, log: logger.GetDefault()}
}

// DownloadTicket handles GET /api/v1/bookings/:id/ticket
func (c *Controller) DownloadTicket(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	data, filename, err := c.service.GenerateTicket(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrNotFound):
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case errors.Is(err, bookings.ErrForbidden):
			response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
		case errors.Is(err, ErrTicketUnavailable):
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Ticket is only available for confirmed paid bookings", nil, nil)
		default:
			c.log.ErrorWithContext(ctx.Request.Context(), "Failed to generate ticket", err,
				map[string]interface{}{"booking_id": ctx.Param("id")})
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to generate ticket", nil, nil)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// SetupTicketRoutes configures the e-ticket download endpoint
func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	bookingGroup := rg.Group("/bookings")
	bookingGroup.Use(auth)
	{
		bookingGroup.GET("/:id/ticket", controller.DownloadTicket)
	}
}
