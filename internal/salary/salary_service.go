package salary

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-siteworks/internal/events"
	"go-siteworks/internal/messaging/kafka"
	salaryerrors "go-siteworks/internal/salary/errors"
	"go-siteworks/internal/shared/contextutil"
	"go-siteworks/internal/workforce"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_service.go -destination=mock/salary_service_mock.go -package=mock
type Service interface {
	// GetEffectiveRate resolves the daily rate in effect for a worker on a
	// given day: the ledger entry with the greatest valid_from <= asOf, then
	// the worker's denormalized current rate, then 0. A dangling worker
	// reference degrades to 0 instead of failing, so one bad link cannot
	// abort a whole report.
	GetEffectiveRate(ctx context.Context, companyID, workerID string, asOf time.Time) (decimal.Decimal, error)
	SetRate(ctx context.Context, companyID, workerID string, req SetRateRequest) (LedgerEntryResponse, error)
	GetSalaryHistory(ctx context.Context, companyID, workerID string) ([]LedgerEntryResponse, error)
	ResolveRatesForPeriod(ctx context.Context, companyID string, workerIDs []string, start, end time.Time) (RateTable, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	workers workforce.Repository
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, workers workforce.Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, workers, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	workers workforce.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		workers: workers,
		outbox:  outboxRepo,
		logger:  l,
	}
}

func (s *service) GetEffectiveRate(
	ctx context.Context,
	companyID, workerID string,
	asOf time.Time,
) (decimal.Decimal, error) {
	entry, err := s.repo.FindEffective(ctx, companyID, workerID, asOf)
	if err == nil {
		return entry.DailyRate, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	// No qualifying history: fall back to the denormalized current rate.
	worker, err := s.workers.FindByIDAndCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("effective rate requested for unknown worker",
				zap.String("company_id", companyID),
				zap.String("worker_id", workerID),
			)
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return worker.CurrentDailyRate, nil
}

func (s *service) SetRate(
	ctx context.Context,
	companyID, workerID string,
	req SetRateRequest,
) (LedgerEntryResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	rate, err := decimal.NewFromString(req.DailyRate)
	if err != nil || rate.IsNegative() {
		return LedgerEntryResponse{}, salaryerrors.ErrInvalidRate
	}

	validFrom, err := time.Parse("2006-01-02", req.ValidFrom)
	if err != nil {
		return LedgerEntryResponse{}, salaryerrors.ErrInvalidValidFrom
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LedgerEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	wtx := s.workers.WithTx(tx)

	worker, err := wtx.FindByIDAndCompany(ctx, companyID, workerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LedgerEntryResponse{}, salaryerrors.ErrWorkerNotFound
		}
		return LedgerEntryResponse{}, err
	}

	// Upsert on (worker_id, valid_from): a second write to the same date
	// corrects the existing fact instead of duplicating it.
	entry, err := qtx.FindByWorkerAndValidFrom(ctx, companyID, workerID, validFrom)
	switch {
	case err == nil:
		entry.DailyRate = rate
		if err := qtx.UpdateRate(ctx, entry); err != nil {
			return LedgerEntryResponse{}, mapRepositoryError(err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = &LedgerEntry{
			ID:        uuid.New(),
			CompanyID: worker.CompanyID,
			WorkerID:  worker.ID,
			DailyRate: rate,
			ValidFrom: validFrom,
		}
		if err := qtx.Create(ctx, entry); err != nil {
			return LedgerEntryResponse{}, mapRepositoryError(err)
		}
	default:
		return LedgerEntryResponse{}, err
	}

	// Legacy behavior: the denormalized rate always mirrors the most
	// recently WRITTEN entry, not the chronologically latest one. Writing
	// history out of order leaves it stale until the next write.
	if err := wtx.UpdateCurrentDailyRate(ctx, companyID, workerID, rate); err != nil {
		return LedgerEntryResponse{}, err
	}

	if s.outbox != nil {
		event := events.SalaryRateChangedEvent{
			EventType:  "salary_rate_changed",
			RequestID:  rid,
			CompanyID:  companyID,
			WorkerID:   workerID,
			DailyRate:  rate.StringFixed(2),
			ValidFrom:  validFrom.Format("2006-01-02"),
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return LedgerEntryResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "salary_ledger_entry",
			AggregateID:   entry.ID.String(),
			EventType:     event.EventType,
			Topic:         events.SalaryRateChangedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("set rate outbox persist failed",
				zap.String("worker_id", workerID),
				zap.Error(err),
			)
			return LedgerEntryResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return LedgerEntryResponse{}, err
	}

	s.logger.Info("salary rate written",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("worker_id", workerID),
		zap.String("daily_rate", rate.StringFixed(2)),
		zap.String("valid_from", validFrom.Format("2006-01-02")),
	)

	return mapEntryToResponse(*entry), nil
}

func (s *service) GetSalaryHistory(
	ctx context.Context,
	companyID, workerID string,
) ([]LedgerEntryResponse, error) {
	entries, err := s.repo.FindAllByWorker(ctx, companyID, workerID)
	if err != nil {
		return nil, err
	}

	res := make([]LedgerEntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = mapEntryToResponse(entry)
	}
	return res, nil
}

func (s *service) ResolveRatesForPeriod(
	ctx context.Context,
	companyID string,
	workerIDs []string,
	start, end time.Time,
) (RateTable, error) {
	if end.Before(start) {
		return nil, salaryerrors.ErrInvalidPeriod
	}

	entries, err := s.repo.FindForWorkersUpTo(ctx, companyID, workerIDs, end)
	if err != nil {
		return nil, err
	}

	return buildRateTable(entries, workerIDs, start, end), nil
}

func mapEntryToResponse(entry LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:        entry.ID.String(),
		WorkerID:  entry.WorkerID.String(),
		DailyRate: entry.DailyRate.StringFixed(2),
		ValidFrom: entry.ValidFrom.Format("2006-01-02"),
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
	}
}
