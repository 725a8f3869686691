package payments

import (
	"errors"
	"net/http"

	"tiketbus/internal/bookings"
	"tiketbus/internal/shared/middleware"
	"tiketbus/internal/shared/utils/response"
	"tiketbus/pkg/logger"

	"github.com/gin-gonic/gin"
)

// callbackTokenHeader is the header Xendit signs callbacks with.
const callbackTokenHeader = "x-callback-token"

type Controller struct {
	service Service
	log     *logger.Logger
}

func NewController(service Service) *Controller {
	return &Controller{service: service, log: logger.GetDefault()}
}

// CreatePayment handles POST /api/v1/payments
func (c *Controller) CreatePayment(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreatePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	payment, err := c.service.CreateInvoice(ctx.Request.Context(), userID, req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Payment invoice created successfully", payment, nil)
}

// GetPaymentForBooking handles GET /api/v1/bookings/:id/payment
func (c *Controller) GetPaymentForBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	payment, err := c.service.GetByBookingID(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment fetched successfully", payment, nil)
}

// HandleWebhook handles POST /api/v1/payments/webhook
func (c *Controller) HandleWebhook(ctx *gin.Context) {
	var payload WebhookPayload
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid webhook payload", nil, err.Error())
		return
	}

	token := ctx.GetHeader(callbackTokenHeader)
	result, err := c.service.HandleWebhook(ctx.Request.Context(), token, payload)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Webhook processed", result, nil)
}

// SimulateWebhook handles POST /api/v1/payments/simulate-webhook
func (c *Controller) SimulateWebhook(ctx *gin.Context) {
	var req struct {
		BookingID string `json:"booking_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.service.SimulateWebhook(ctx.Request.Context(), req.BookingID); err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Simulated paid webhook applied", nil, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotConfigured):
		response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Payment gateway is not configured", nil, nil)
	case errors.Is(err, ErrInvalidGatewayResponse):
		response.RespondJSON(ctx, "error", http.StatusBadGateway, "Payment gateway returned an invalid response", nil, nil)
	case errors.Is(err, ErrInvalidToken):
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid webhook callback token", nil, nil)
	case errors.Is(err, ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Payment not found", nil, nil)
	case errors.Is(err, bookings.ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, bookings.ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
	default:
		c.log.ErrorWithContext(ctx.Request.Context(), "Unhandled payment error", err,
			map[string]interface{}{"path": ctx.FullPath()})
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
