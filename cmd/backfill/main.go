package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-siteworks/internal/diary"
	"go-siteworks/internal/reconcile"
	"go-siteworks/internal/salary"
	"go-siteworks/internal/shared/apperror"
	"go-siteworks/internal/shared/connection"
	"go-siteworks/internal/workforce"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var sinceFlag string

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	rootCmd := &cobra.Command{
		Use:   "backfill",
		Short: "One-off reconciliation of diary rate snapshots against the salary ledger",
	}

	rootCmd.PersistentFlags().StringVar(&sinceFlag, "since", "", "only touch entries dated on or after this date (YYYY-MM-DD)")

	rootCmd.AddCommand(workerCmd())
	rootCmd.AddCommand(companyCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func buildService() (reconcile.Service, error) {
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
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	workforceRepo := workforce.NewRepository(gormDB)
	salaryRepo := salary.NewRepository(gormDB)
	diaryRepo := diary.NewRepository(gormDB)
	salaryService := salary.NewService(sqlDB, salaryRepo, workforceRepo)

	return reconcile.NewService(diaryRepo, workforceRepo, salaryService), nil
}

func parseSince() (time.Time, error) {
	if sinceFlag == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", sinceFlag)
}

func workerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker [company-id] [worker-id]",
		Short: "Reconcile one worker's diary snapshots",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}

			cutoff, err := parseSince()
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}

			summary, err := svc.ReconcileWorkerSince(context.Background(), args[0], args[1], cutoff)
			if err != nil {
				return err
			}

			fmt.Printf("Worker %s (%s)\n", summary.WorkerName, summary.WorkerID)
			fmt.Printf("  entries: %d, updated: %d, skipped: %d, failed: %d\n",
				summary.TotalItems, summary.UpdatedCount, summary.SkippedCount, summary.FailedCount)
			return nil
		},
	}
}

func companyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "company [company-id]",
		Short: "Reconcile every worker in a company",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService()
			if err != nil {
				return err
			}

			cutoff, err := parseSince()
			if err != nil {
				return fmt.Errorf("invalid --since: %w", err)
			}

			var summary reconcile.TenantSummary
			if cutoff.IsZero() {
				summary, err = svc.ReconcileAllWorkers(context.Background(), args[0])
			} else {
				summary, err = svc.ReconcileSince(context.Background(), args[0], cutoff)
			}
			if err != nil {
				return err
			}

			fmt.Printf("Company %s: %d workers, %d entries\n", args[0], summary.TotalWorkers, summary.TotalItems)
			fmt.Printf("  updated: %d, skipped: %d, failed: %d\n",
				summary.TotalUpdated, summary.TotalSkipped, summary.TotalFailed)
			for _, ws := range summary.PerWorker {
				fmt.Printf("  - %s: updated %d / %d\n", ws.WorkerName, ws.UpdatedCount, ws.TotalItems)
			}
			return nil
		},
	}
}
