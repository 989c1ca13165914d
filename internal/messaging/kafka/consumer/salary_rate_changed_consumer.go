package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-siteworks/internal/events"
	"go-siteworks/internal/reconcile"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeSalaryRateChanged reconciles a worker's diary snapshots whenever a
// ledger entry is written. The valid-from date bounds the run: entries dated
// before the new rate took effect cannot have gone stale.
func ConsumeSalaryRateChanged(
	ctx context.Context,
	reader *kafkago.Reader,
	reconcileService reconcile.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_rate_changed")
	log.Info("salary rate changed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary rate changed consumer stopped")
				return
			}
			log.Error("fetch salary rate changed message failed", zap.Error(err))
			continue
		}

		var event events.SalaryRateChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode salary rate changed event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		cutoff, err := time.Parse("2006-01-02", event.ValidFrom)
		if err != nil {
			log.Error("invalid valid_from in salary rate changed event",
				zap.String("valid_from", event.ValidFrom),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		summary, err := reconcileService.ReconcileWorkerSince(ctx, event.CompanyID, event.WorkerID, cutoff)
		if err != nil {
			log.Error("reconcile after rate change failed",
				zap.String("worker_id", event.WorkerID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary rate changed message failed", zap.Error(err))
			continue
		}

		log.Info("diary snapshots reconciled after rate change",
			zap.String("worker_id", event.WorkerID),
			zap.String("company_id", event.CompanyID),
			zap.Int("updated", summary.UpdatedCount),
			zap.Int("skipped", summary.SkippedCount),
			zap.Int("failed", summary.FailedCount),
		)
	}
}
