package salary

import (
	"go-siteworks/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	salaries := r.Group("/workers/:id/salary")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("", middleware.RateLimitByUser(2, 5), handler.GetHistory)
		salaries.GET("/effective", middleware.RateLimitByUser(5, 10), handler.GetEffectiveRate)
		salaries.POST("", middleware.RateLimitByUser(0.5, 2), handler.SetRate)
	}

	rates := r.Group("/salary-rates")
	rates.Use(middleware.AuthMiddleware())
	{
		rates.POST("/resolve", middleware.RateLimitByUser(1, 3), handler.ResolveRates)
	}
}
