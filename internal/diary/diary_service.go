package diary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	diaryerrors "go-siteworks/internal/diary/errors"
	"go-siteworks/internal/workforce"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RateSource answers point-in-time rate queries. Satisfied by the salary
// service.
type RateSource interface {
	GetEffectiveRate(ctx context.Context, companyID, workerID string, asOf time.Time) (decimal.Decimal, error)
}

//go:generate mockgen -source=diary_service.go -destination=mock/diary_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateEntryRequest) (EntryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EntryResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	workers workforce.Repository
	rates   RateSource
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workers workforce.Repository,
	rates RateSource,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("diary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("diary.service")
	}
	return &service{db: db, repo: repo, workers: workers, rates: rates, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEntryRequest,
) (EntryResponse, error) {
	if req.WorkerID == "" && req.WorkerName == "" {
		return EntryResponse{}, diaryerrors.ErrWorkerReferenceRequired
	}

	entryDate, err := time.Parse("2006-01-02", req.EntryDate)
	if err != nil {
		return EntryResponse{}, diaryerrors.ErrInvalidEntryDate
	}

	workItemID, err := uuid.Parse(req.WorkItemID)
	if err != nil {
		return EntryResponse{}, diaryerrors.ErrInvalidWorkItemID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entry := &Entry{
		ID:         uuid.New(),
		CompanyID:  uuid.MustParse(companyID),
		WorkItemID: workItemID,
		WorkerName: req.WorkerName,
		EntryDate:  entryDate,
		Quantity:   req.Quantity,
		WorkHours:  req.WorkHours,
	}

	if req.WorkerID != "" {
		workerID, err := uuid.Parse(req.WorkerID)
		if err != nil {
			return EntryResponse{}, diaryerrors.ErrInvalidWorkerID
		}
		entry.WorkerID = &workerID
	}

	// Freeze the rate in effect on the entry date. The snapshot is what cost
	// reports read; the reconciler corrects it later if the ledger changes
	// retroactively.
	snapshot, err := s.resolveSnapshot(ctx, companyID, entry)
	if err != nil {
		return EntryResponse{}, err
	}
	entry.DailyRateSnapshot = snapshot

	if err := qtx.Create(ctx, entry); err != nil {
		s.logger.Error("create diary entry persist failed", zap.Error(err))
		return EntryResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return EntryResponse{}, err
	}

	return mapToResponse(*entry), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]EntryResponse, error) {
	entries, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	res := make([]EntryResponse, len(entries))
	for i, entry := range entries {
		res[i] = mapToResponse(entry)
	}
	return res, nil
}

func (s *service) resolveSnapshot(ctx context.Context, companyID string, entry *Entry) (decimal.Decimal, error) {
	if entry.WorkerID != nil {
		return s.rates.GetEffectiveRate(ctx, companyID, entry.WorkerID.String(), entry.EntryDate)
	}

	worker, err := s.workers.FindByNameAndCompany(ctx, companyID, entry.WorkerName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("diary entry created with unresolvable worker name",
				zap.String("company_id", companyID),
				zap.String("worker_name", entry.WorkerName),
			)
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	return s.rates.GetEffectiveRate(ctx, companyID, worker.ID.String(), entry.EntryDate)
}

func mapToResponse(entry Entry) EntryResponse {
	resp := EntryResponse{
		ID:                entry.ID.String(),
		WorkItemID:        entry.WorkItemID.String(),
		WorkerName:        entry.WorkerName,
		EntryDate:         entry.EntryDate.Format("2006-01-02"),
		Quantity:          entry.Quantity,
		WorkHours:         entry.WorkHours,
		DailyRateSnapshot: entry.DailyRateSnapshot.StringFixed(2),
	}
	if entry.WorkerID != nil {
		v := entry.WorkerID.String()
		resp.WorkerID = &v
	}
	return resp
}
