package bookings

import (
	"errors"
	"net/http"
	"time"

	"tiketbus/internal/schedules"
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

type createBookingBody struct {
	ScheduleID string      `json:"schedule_id" binding:"required"`
	SeatIDs    []string    `json:"seat_ids" binding:"required,min=1"`
	Passengers []Passenger `json:"passengers" binding:"required,min=1,dive"`
	TravelDate string      `json:"travel_date"`
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var body createBookingBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	req := CreateBookingRequest{
		ScheduleID: body.ScheduleID,
		SeatIDs:    body.SeatIDs,
		Passengers: body.Passengers,
	}
	if body.TravelDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", body.TravelDate, time.Local)
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid travel_date, expected YYYY-MM-DD", nil, nil)
			return
		}
		req.TravelDate = &parsed
	}

	booking, err := c.service.Create(ctx.Request.Context(), userID, req)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	booking, err := c.service.GetByID(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking fetched successfully", booking, nil)
}

// ListUserBookings handles GET /api/v1/users/bookings
func (c *Controller) ListUserBookings(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	results, err := c.service.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings fetched successfully", results, nil)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	booking, err := c.service.Cancel(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// ListBookedSeats handles GET /api/v1/schedules/:id/bookings
func (c *Controller) ListBookedSeats(ctx *gin.Context) {
	seats, err := c.service.ListBookedSeats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booked seats fetched successfully", gin.H{"booked_seats": seats}, nil)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInsufficientSeats):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Not enough seats available", nil, nil)
	case errors.Is(err, ErrSeatConflict):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Some seats are already booked", nil, nil)
	case errors.Is(err, ErrAlreadyCancelled):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking is already cancelled", nil, nil)
	case errors.Is(err, ErrPassengerMismatch):
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Passenger count must match seat count", nil, nil)
	case errors.Is(err, ErrForbidden):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not have access to this booking", nil, nil)
	case errors.Is(err, ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Booking not found", nil, nil)
	case errors.Is(err, schedules.ErrNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Schedule not found", nil, nil)
	default:
		c.log.ErrorWithContext(ctx.Request.Context(), "Unhandled booking error", err,
			map[string]interface{}{"path": ctx.FullPath()})
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
