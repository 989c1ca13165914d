package performance

import (
	"go-siteworks/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	reports := r.Group("/performance")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.POST("/report", middleware.RateLimitByUser(1, 3), handler.GetPeriodReport)
	}
}
