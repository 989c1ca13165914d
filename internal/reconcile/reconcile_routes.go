package reconcile

import (
	"go-siteworks/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb *redis.Client) {
	group := r.Group("/reconcile")
	group.Use(middleware.AuthMiddleware())
	group.Use(middleware.Idempotency(rdb))
	{
		group.POST("/workers/:id", middleware.RateLimitByUser(0.5, 2), handler.ReconcileWorker)
		group.POST("/workers", middleware.RateLimitByUser(0.1, 1), handler.ReconcileAllWorkers)
		group.POST("/since", middleware.RateLimitByUser(0.1, 1), handler.ReconcileSince)
	}
}
