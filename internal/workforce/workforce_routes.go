package workforce

import (
	"go-siteworks/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	workers := r.Group("/workers")
	workers.Use(middleware.AuthMiddleware())
	{
		workers.GET("", middleware.RateLimitByUser(2, 5), handler.GetAll)
		workers.GET("/:id", middleware.RateLimitByUser(2, 5), handler.GetById)
		workers.POST("", middleware.RateLimitByUser(0.5, 2), handler.Create)
		workers.PUT("/:id", middleware.RateLimitByUser(0.5, 2), handler.Update)
		workers.DELETE("/:id", middleware.RateLimitByUser(0.1, 1), handler.Delete)
	}
}
