package schedules

import (
	"errors"
	"net/http"
	"time"

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

// SearchSchedules handles GET /api/v1/schedules?routeId=...&origin=...&destination=...&date=...
func (c *Controller) SearchSchedules(ctx *gin.Context) {
	query := CandidateQuery{
		RouteID:     ctx.Query("routeId"),
		Origin:      ctx.Query("origin"),
		Destination: ctx.Query("destination"),
	}

	if query.RouteID == "" && (query.Origin == "" || query.Destination == "") {
		response.RespondJSON(ctx, "error", http.StatusBadRequest,
			"Provide routeId or both origin and destination", nil, nil)
		return
	}

	date, ok := parseDateParam(ctx)
	if !ok {
		return
	}
	query.Date = date

	candidates, err := c.service.ListCandidates(ctx.Request.Context(), query)
	if err != nil {
		c.log.ErrorWithContext(ctx.Request.Context(), "Failed to search schedules", err,
			map[string]interface{}{"route_id": query.RouteID})
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to search schedules", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedules fetched successfully", candidates, nil)
}

// GetSchedule handles GET /api/v1/schedules/:id?date=...
func (c *Controller) GetSchedule(ctx *gin.Context) {
	scheduleID := ctx.Param("id")

	date, ok := parseDateParam(ctx)
	if !ok {
		return
	}

	schedule, err := c.service.GetSchedule(ctx.Request.Context(), scheduleID, date)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Schedule not found", nil, nil)
			return
		}
		c.log.ErrorWithContext(ctx.Request.Context(), "Failed to fetch schedule", err,
			map[string]interface{}{"schedule_id": scheduleID})
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch schedule", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedule fetched successfully", schedule, nil)
}

func parseDateParam(ctx *gin.Context) (*time.Time, bool) {
	raw := ctx.Query("date")
	if raw == "" {
		return nil, true
	}
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, nil)
		return nil, false
	}
	return &parsed, true
}
