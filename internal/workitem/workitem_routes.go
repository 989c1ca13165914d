package workitem

import (
	"go-siteworks/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	items := r.Group("/work-items")
	items.Use(middleware.AuthMiddleware())
	{
		items.GET("", middleware.RateLimitByUser(2, 5), handler.GetAll)
	}
}
