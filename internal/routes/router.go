package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupRouteRoutes configures route search endpoints
func SetupRouteRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/routes", controller.SearchRoutes) // GET /api/v1/routes?origin=Jakarta&destination=Bandung
}
