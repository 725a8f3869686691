package users

import (
	"errors"
	"net/http"

	"tiketbus/internal/shared/middleware"
	"tiketbus/internal/shared/utils/response"
	"tiketbus/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Controller struct {
	repo Repository
	log  *logger.Logger
}

func NewController(repo Repository) *Controller {
	return &Controller{repo: repo, log: logger.GetDefault()}
}

// GetProfile handles GET /api/v1/users/me
func (c *Controller) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	user, err := c.repo.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.RespondJSON(ctx, "error", http.StatusNotFound, "User not found", nil, nil)
			return
		}
		c.log.ErrorWithContext(ctx.Request.Context(), "Failed to fetch profile", err,
			map[string]interface{}{"user_id": userID})
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch profile", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile fetched successfully", user, nil)
}

// SetupUserRoutes configures user profile endpoints
func SetupUserRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	userGroup := rg.Group("/users")
	userGroup.Use(auth)
	{
		userGroup.GET("/me", controller.GetProfile)
	}
}
