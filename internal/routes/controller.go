package routes

import (
	"net/http"

	"tiketbus/internal/shared/utils/response"
	"tiketbus/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	repo Repository
	log  *logger.Logger
}

func NewController(repo Repository) *Controller {
	return &Controller{repo: repo, log: logger.GetDefault()}
}

// SearchRoutes handles GET /api/v1/routes?origin=...&destination=...
func (c *Controller) SearchRoutes(ctx *gin.Context) {
	origin := ctx.Query("origin")
	destination := ctx.Query("destination")

	results, err := c.repo.Search(ctx.Request.Context(), origin, destination)
	if err != nil {
		c.log.ErrorWithContext(ctx.Request.Context(), "Failed to search routes", err,
			map[string]interface{}{"origin": origin, "destination": destination})
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to search routes", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Routes fetched successfully", results, nil)
}
