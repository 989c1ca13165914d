package workforce

import (
	"context"
	"database/sql"
	"errors"
	"time"

	workforceerrors "go-siteworks/internal/workforce/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workforce_service.go -destination=mock/workforce_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context, companyID string) ([]WorkerResponse, error)
	GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workforce.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workforce.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateWorkerRequest,
) (WorkerResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rate := decimal.Zero
	if req.DailyRate != "" {
		rate, err = decimal.NewFromString(req.DailyRate)
		if err != nil || rate.IsNegative() {
			return WorkerResponse{}, workforceerrors.ErrInvalidDailyRate
		}
	}

	worker := &Worker{
		ID:               uuid.New(),
		CompanyID:        uuid.MustParse(companyID),
		Name:             req.Name,
		CurrentDailyRate: rate,
	}

	if err := qtx.Create(ctx, worker); err != nil {
		s.logger.Error("create worker persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	s.logger.Info("worker created",
		zap.String("worker_id", worker.ID.String()),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*worker), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]WorkerResponse, error) {
	workers, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all workers failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(workers), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (WorkerResponse, error) {
	worker, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, workforceerrors.ErrWorkerNotFound
		}
		return WorkerResponse{}, err
	}

	return mapToResponse(*worker), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateWorkerRequest,
) (WorkerResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	worker, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkerResponse{}, workforceerrors.ErrWorkerNotFound
		}
		return WorkerResponse{}, err
	}

	worker.Name = req.Name

	if err := qtx.Update(ctx, worker); err != nil {
		s.logger.Error("update worker persist failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	return mapToResponse(*worker), nil
}

// Delete soft-deletes only. Ledger entries and diary snapshots keep pointing
// at the worker row for historical reports.
func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete worker failed", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func mapToResponse(worker Worker) WorkerResponse {
	return WorkerResponse{
		ID:               worker.ID.String(),
		CompanyID:        worker.CompanyID.String(),
		Name:             worker.Name,
		CurrentDailyRate: worker.CurrentDailyRate.StringFixed(2),
		CreatedAt:        worker.CreatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(workers []Worker) []WorkerResponse {
	res := make([]WorkerResponse, len(workers))
	for i, worker := range workers {
		res[i] = mapToResponse(worker)
	}
	return res
}
