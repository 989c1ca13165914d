package salary

import (
	"context"
	"database/sql"
	"time"

	"go-siteworks/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_repo.go -destination=mock/salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *LedgerEntry) error
	UpdateRate(ctx context.Context, entry *LedgerEntry) error
	FindByWorkerAndValidFrom(ctx context.Context, companyID, workerID string, validFrom time.Time) (*LedgerEntry, error)
	FindEffective(ctx context.Context, companyID, workerID string, asOf time.Time) (*LedgerEntry, error)
	FindAllByWorker(ctx context.Context, companyID, workerID string) ([]LedgerEntry, error)
	FindForWorkersUpTo(ctx context.Context, companyID string, workerIDs []string, end time.Time) ([]LedgerEntry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, entry *LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) UpdateRate(ctx context.Context, entry *LedgerEntry) error {
	return r.db.WithContext(ctx).
		Model(&LedgerEntry{}).
		Where("id = ?", entry.ID).
		Update("daily_rate", entry.DailyRate).Error
}

func (r *repository) FindByWorkerAndValidFrom(ctx context.Context, companyID, workerID string, validFrom time.Time) (*LedgerEntry, error) {
	var entry LedgerEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("valid_from = ?", validFrom.Format("2006-01-02")).
		First(&entry).Error
	return &entry, err
}

// FindEffective returns the entry with the greatest valid_from not exceeding
// asOf. gorm.ErrRecordNotFound means the worker has no qualifying history.
func (r *repository) FindEffective(ctx context.Context, companyID, workerID string, asOf time.Time) (*LedgerEntry, error) {
	var entry LedgerEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("valid_from <= ?", asOf.Format("2006-01-02")).
		Order("valid_from DESC").
		First(&entry).Error
	return &entry, err
}

func (r *repository) FindAllByWorker(ctx context.Context, companyID, workerID string) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Order("valid_from DESC").
		Find(&entries).Error
	return entries, err
}

// FindForWorkersUpTo fetches every qualifying entry for a worker set in one
// query, ordered so the batch resolver can walk each worker's history newest
// first without re-sorting.
func (r *repository) FindForWorkersUpTo(ctx context.Context, companyID string, workerIDs []string, end time.Time) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id IN ?", workerIDs).
		Where("valid_from <= ?", end.Format("2006-01-02")).
		Order("worker_id ASC, valid_from DESC").
		Find(&entries).Error
	return entries, err
}
