package workitem

import (
	"context"

	"go.uber.org/zap"
)

//go:generate mockgen -source=workitem_service.go -destination=mock/workitem_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string) ([]WorkItemResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("workitem.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workitem.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]WorkItemResponse, error) {
	items, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all work items failed", zap.Error(err))
		return nil, err
	}

	res := make([]WorkItemResponse, len(items))
	for i, item := range items {
		res[i] = WorkItemResponse{
			ID:        item.ID.String(),
			Name:      item.Name,
			Unit:      item.Unit,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		}
	}
	return res, nil
}
