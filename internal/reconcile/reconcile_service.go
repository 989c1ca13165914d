package reconcile

import (
	"context"
	"errors"
	"time"

	"go-siteworks/internal/diary"
	reconcileerrors "go-siteworks/internal/reconcile/errors"
	"go-siteworks/internal/workforce"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RateSource answers point-in-time rate queries. Satisfied by the salary
// service, including its fallback to the worker's cached current rate.
type RateSource interface {
	GetEffectiveRate(ctx context.Context, companyID, workerID string, asOf time.Time) (decimal.Decimal, error)
}

//go:generate mockgen -source=reconcile_service.go -destination=mock/reconcile_service_mock.go -package=mock
type Service interface {
	ReconcileWorker(ctx context.Context, companyID, workerID string) (WorkerSummary, error)
	ReconcileWorkerSince(ctx context.Context, companyID, workerID string, cutoff time.Time) (WorkerSummary, error)
	ReconcileAllWorkers(ctx context.Context, companyID string) (TenantSummary, error)
	ReconcileSince(ctx context.Context, companyID string, cutoff time.Time) (TenantSummary, error)
}

type service struct {
	entries diary.Repository
	workers workforce.Repository
	rates   RateSource
	logger  *zap.Logger
}

func NewService(
	entries diary.Repository,
	workers workforce.Repository,
	rates RateSource,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("reconcile.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconcile.service")
	}
	return &service{entries: entries, workers: workers, rates: rates, logger: l}
}

func (s *service) ReconcileWorker(
	ctx context.Context,
	companyID, workerID string,
) (WorkerSummary, error) {
	return s.ReconcileWorkerSince(ctx, companyID, workerID, time.Time{})
}

// ReconcileWorkerSince rewrites stale diary snapshots for one worker. The
// entry set is the union of entries linked by worker id and entries whose
// free-text worker name matches, so pre-registration entries converge too.
// A second run over the same data reports zero updates.
func (s *service) ReconcileWorkerSince(
	ctx context.Context,
	companyID, workerID string,
	cutoff time.Time,
) (WorkerSummary, error) {
	worker, err := s.workers.FindByIDAndCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerSummary{}, reconcileerrors.ErrWorkerNotFound
		}
		return WorkerSummary{}, err
	}

	linked, err := s.entries.FindByWorker(ctx, companyID, workerID)
	if err != nil {
		return WorkerSummary{}, err
	}
	named, err := s.entries.FindByWorkerName(ctx, companyID, worker.Name)
	if err != nil {
		return WorkerSummary{}, err
	}

	summary := WorkerSummary{
		WorkerID:   workerID,
		WorkerName: worker.Name,
	}

	seen := make(map[string]struct{}, len(linked)+len(named))
	for _, entry := range append(linked, named...) {
		id := entry.ID.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if !cutoff.IsZero() && entry.EntryDate.Before(cutoff) {
			continue
		}

		summary.TotalItems++
		s.reconcileEntry(ctx, companyID, workerID, entry, &summary)
	}

	s.logger.Info("worker reconciliation finished",
		zap.String("company_id", companyID),
		zap.String("worker_id", workerID),
		zap.Int("total", summary.TotalItems),
		zap.Int("updated", summary.UpdatedCount),
		zap.Int("skipped", summary.SkippedCount),
		zap.Int("failed", summary.FailedCount),
	)

	return summary, nil
}

func (s *service) ReconcileAllWorkers(
	ctx context.Context,
	companyID string,
) (TenantSummary, error) {
	workers, err := s.workers.FindAllByCompany(ctx, companyID)
	if err != nil {
		return TenantSummary{}, err
	}

	summary := TenantSummary{PerWorker: make([]WorkerSummary, 0, len(workers))}
	for _, worker := range workers {
		ws, err := s.ReconcileWorkerSince(ctx, companyID, worker.ID.String(), time.Time{})
		if err != nil {
			// One broken worker must not abort the company-wide run.
			s.logger.Error("worker reconciliation failed",
				zap.String("company_id", companyID),
				zap.String("worker_id", worker.ID.String()),
				zap.Error(err),
			)
			summary.TotalFailed++
			continue
		}
		summary.PerWorker = append(summary.PerWorker, ws)
		summary.TotalItems += ws.TotalItems
		summary.TotalUpdated += ws.UpdatedCount
		summary.TotalSkipped += ws.SkippedCount
		summary.TotalFailed += ws.FailedCount
	}
	summary.TotalWorkers = len(workers)

	return summary, nil
}

// ReconcileSince walks diary entries dated on or after the cutoff across the
// whole company. Entries are resolved to a worker by id link first, then by
// case-insensitive name; unresolvable entries are skipped and logged.
func (s *service) ReconcileSince(
	ctx context.Context,
	companyID string,
	cutoff time.Time,
) (TenantSummary, error) {
	entries, err := s.entries.FindSince(ctx, companyID, cutoff)
	if err != nil {
		return TenantSummary{}, err
	}

	summary := TenantSummary{}
	perWorker := make(map[string]*WorkerSummary)

	for _, entry := range entries {
		summary.TotalItems++

		workerID, workerName, ok := s.resolveWorker(ctx, companyID, entry)
		if !ok {
			summary.TotalSkipped++
			continue
		}

		ws, found := perWorker[workerID]
		if !found {
			ws = &WorkerSummary{WorkerID: workerID, WorkerName: workerName}
			perWorker[workerID] = ws
		}
		ws.TotalItems++

		s.reconcileEntry(ctx, companyID, workerID, entry, ws)
	}

	for _, ws := range perWorker {
		summary.PerWorker = append(summary.PerWorker, *ws)
		summary.TotalUpdated += ws.UpdatedCount
		summary.TotalSkipped += ws.SkippedCount
		summary.TotalFailed += ws.FailedCount
	}
	summary.TotalWorkers = len(perWorker)

	return summary, nil
}

// reconcileEntry compares one snapshot against the ledger and rewrites it
// only when stale. Failures are counted, logged and never propagated; the
// run always covers every remaining entry.
func (s *service) reconcileEntry(
	ctx context.Context,
	companyID, workerID string,
	entry diary.Entry,
	summary *WorkerSummary,
) {
	expected, err := s.rates.GetEffectiveRate(ctx, companyID, workerID, entry.EntryDate)
	if err != nil {
		summary.FailedCount++
		s.logger.Error("effective rate lookup failed during reconciliation",
			zap.String("entry_id", entry.ID.String()),
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		return
	}

	if entry.DailyRateSnapshot.Equal(expected) {
		summary.SkippedCount++
		return
	}

	if err := s.entries.UpdateSnapshot(ctx, entry.ID.String(), expected); err != nil {
		summary.FailedCount++
		s.logger.Error("snapshot update failed during reconciliation",
			zap.String("entry_id", entry.ID.String()),
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		return
	}

	summary.UpdatedCount++
}

func (s *service) resolveWorker(
	ctx context.Context,
	companyID string,
	entry diary.Entry,
) (workerID, workerName string, ok bool) {
	if entry.WorkerID != nil {
		worker, err := s.workers.FindByIDAndCompany(ctx, companyID, entry.WorkerID.String())
		if err == nil {
			return worker.ID.String(), worker.Name, true
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("worker lookup failed during reconciliation",
				zap.String("entry_id", entry.ID.String()),
				zap.Error(err),
			)
			return "", "", false
		}
	}

	if entry.WorkerName != "" {
		worker, err := s.workers.FindByNameAndCompany(ctx, companyID, entry.WorkerName)
		if err == nil {
			return worker.ID.String(), worker.Name, true
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("worker name lookup failed during reconciliation",
				zap.String("entry_id", entry.ID.String()),
				zap.Error(err),
			)
			return "", "", false
		}
	}

	s.logger.Warn("diary entry has no resolvable worker, leaving snapshot untouched",
		zap.String("entry_id", entry.ID.String()),
		zap.String("worker_name", entry.WorkerName),
	)
	return "", "", false
}
