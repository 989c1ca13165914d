package diary

import (
	"go-siteworks/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	entries := r.Group("/diary-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", middleware.RateLimitByUser(2, 5), handler.GetAll)
		entries.POST("", middleware.RateLimitByUser(1, 3), handler.Create)
	}
}
