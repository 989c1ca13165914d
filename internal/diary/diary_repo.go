package diary

import (
	"context"
	"database/sql"
	"time"

	"go-siteworks/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=diary_repo.go -destination=mock/diary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, entry *Entry) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error)
	FindByWorker(ctx context.Context, companyID, workerID string) ([]Entry, error)
	FindByWorkerName(ctx context.Context, companyID, name string) ([]Entry, error)
	FindSince(ctx context.Context, companyID string, cutoff time.Time) ([]Entry, error)
	FindForPeriod(ctx context.Context, companyID string, start, end time.Time) ([]Entry, error)
	UpdateSnapshot(ctx context.Context, id string, rate decimal.Decimal) error
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

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByWorker(ctx context.Context, companyID, workerID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

// FindByWorkerName matches the soft link case-insensitively.
func (r *repository) FindByWorkerName(ctx context.Context, companyID, name string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("LOWER(worker_name) = LOWER(?)", name).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindSince(ctx context.Context, companyID string, cutoff time.Time) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("entry_date >= ?", cutoff.Format("2006-01-02")).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindForPeriod(ctx context.Context, companyID string, start, end time.Time) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("entry_date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("entry_date ASC").
		Find(&entries).Error
	return entries, err
}

// UpdateSnapshot touches only the snapshot column; the reconciler must not be
// able to clobber anything else on the row.
func (r *repository) UpdateSnapshot(ctx context.Context, id string, rate decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"daily_rate_snapshot": rate,
			"updated_at":          time.Now().UTC(),
		}).Error
}
