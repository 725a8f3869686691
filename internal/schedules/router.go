package schedules

import (
	"github.com/gin-gonic/gin"
)

// SetupScheduleRoutes configures schedule search and lookup endpoints
func SetupScheduleRoutes(rg *gin.RouterGroup, controller *Controller) {
	schedules := rg.Group("/schedules")
	{
		schedules.GET("", controller.SearchSchedules)   // GET /api/v1/schedules?origin=Jakarta&destination=Bandung&date=2026-09-02
		schedules.GET("/:id", controller.GetSchedule)   // GET /api/v1/schedules/:id?date=2026-09-02
	}
}
