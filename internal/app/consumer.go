package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-siteworks/internal/diary"
	"go-siteworks/internal/events"
	"go-siteworks/internal/messaging/kafka/consumer"
	"go-siteworks/internal/reconcile"
	"go-siteworks/internal/salary"
	"go-siteworks/internal/shared/connection"
	"go-siteworks/internal/workforce"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	workforceRepo := workforce.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	diaryRepo := diary.NewRepository(gormDB)
	salaryService := salary.NewService(sqlDB, salaryRepo, workforceRepo)
	reconcileService := reconcile.NewService(diaryRepo, workforceRepo, salaryService)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          events.SalaryRateChangedTopic,
		GroupID:        "go-siteworks-reconcile",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeSalaryRateChanged(ctx, reader, reconcileService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
