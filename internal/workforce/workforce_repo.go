package workforce

import (
	"context"
	"database/sql"
	"time"

	"go-siteworks/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workforce_repo.go -destination=mock/workforce_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, worker *Worker) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Worker, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Worker, error)
	FindByNameAndCompany(ctx context.Context, companyID string, name string) (*Worker, error)
	Update(ctx context.Context, worker *Worker) error
	UpdateCurrentDailyRate(ctx context.Context, companyID string, id string, rate decimal.Decimal) error
	Delete(ctx context.Context, companyID string, id string) error
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

func (r *repository) Create(ctx context.Context, worker *Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Worker, error) {
	var workers []Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&workers).Error
	return workers, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Worker, error) {
	var worker Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&worker, "id = ?", id).Error
	return &worker, err
}

// FindByNameAndCompany matches case-insensitively. Diary entries written
// before a worker record was linked reference workers by name only.
func (r *repository) FindByNameAndCompany(ctx context.Context, companyID string, name string) (*Worker, error) {
	var worker Worker
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("LOWER(name) = LOWER(?)", name).
		First(&worker).Error
	return &worker, err
}

func (r *repository) Update(ctx context.Context, worker *Worker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

func (r *repository) UpdateCurrentDailyRate(ctx context.Context, companyID string, id string, rate decimal.Decimal) error {
	return r.db.WithContext(ctx).
		Model(&Worker{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_daily_rate": rate,
			"updated_at":         time.Now().UTC(),
		}).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Worker{}, "id = ?", id).Error
}
