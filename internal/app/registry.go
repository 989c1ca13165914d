package app

import (
	"database/sql"

	"go-siteworks/internal/diary"
	"go-siteworks/internal/messaging/kafka"
	"go-siteworks/internal/performance"
	"go-siteworks/internal/reconcile"
	"go-siteworks/internal/salary"
	"go-siteworks/internal/workforce"
	"go-siteworks/internal/workitem"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	workforceRepo := workforce.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	diaryRepo := diary.NewRepository(gormDB)
	workitemRepo := workitem.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	workforceService := workforce.NewService(db, workforceRepo)
	salaryService := salary.NewServiceWithOutbox(db, salaryRepo, workforceRepo, outboxRepo)
	diaryService := diary.NewService(db, diaryRepo, workforceRepo, salaryService)
	workitemService := workitem.NewService(workitemRepo)
	reconcileService := reconcile.NewService(diaryRepo, workforceRepo, salaryService)
	performanceService := performance.NewService(diaryRepo, workitemRepo, workforceRepo, salaryService, rdb)

	// --- Handlers ---
	workforceHandler := workforce.NewHandler(workforceService)
	salaryHandler := salary.NewHandler(salaryService)
	diaryHandler := diary.NewHandler(diaryService)
	workitemHandler := workitem.NewHandler(workitemService)
	reconcileHandler := reconcile.NewHandler(reconcileService)
	performanceHandler := performance.NewHandler(performanceService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		workforce.RegisterRoutes(api, workforceHandler)
		salary.RegisterRoutes(api, salaryHandler)
		diary.RegisterRoutes(api, diaryHandler)
		workitem.RegisterRoutes(api, workitemHandler)
		reconcile.RegisterRoutes(api, reconcileHandler, rdb)
		performance.RegisterRoutes(api, performanceHandler)
	}

	return nil
}
