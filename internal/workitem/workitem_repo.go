package workitem

import (
	"context"

	"go-siteworks/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=workitem_repo.go -destination=mock/workitem_repo_mock.go -package=mock
type Repository interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]WorkItem, error)
	FindByIDs(ctx context.Context, companyID string, ids []string) ([]WorkItem, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]WorkItem, error) {
	var items []WorkItem
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByIDs(ctx context.Context, companyID string, ids []string) ([]WorkItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []WorkItem
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}
