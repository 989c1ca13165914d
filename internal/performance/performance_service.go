package performance

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-siteworks/internal/diary"
	performanceerrors "go-siteworks/internal/performance/errors"
	"go-siteworks/internal/salary"
	"go-siteworks/internal/workforce"
	"go-siteworks/internal/workitem"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const ReportCacheKeyPrefix = "performance:report:"

const reportCacheTTL = 5 * time.Minute

// RateResolver answers batch rate queries for a period. Satisfied by the
// salary service.
type RateResolver interface {
	ResolveRatesForPeriod(ctx context.Context, companyID string, workerIDs []string, start, end time.Time) (salary.RateTable, error)
}

//go:generate mockgen -source=performance_service.go -destination=mock/performance_service_mock.go -package=mock
type Service interface {
	GetPeriodReport(ctx context.Context, companyID string, req PeriodReportRequest) (PeriodReportResponse, error)
}

type service struct {
	entries diary.Repository
	items   workitem.Repository
	workers workforce.Repository
	rates   RateResolver
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	entries diary.Repository,
	items workitem.Repository,
	workers workforce.Repository,
	rates RateResolver,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("performance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("performance.service")
	}
	return &service{
		entries: entries,
		items:   items,
		workers: workers,
		rates:   rates,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) GetPeriodReport(
	ctx context.Context,
	companyID string,
	req PeriodReportRequest,
) (PeriodReportResponse, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return PeriodReportResponse{}, performanceerrors.ErrInvalidStartDate
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return PeriodReportResponse{}, performanceerrors.ErrInvalidEndDate
	}
	if end.Before(start) {
		return PeriodReportResponse{}, performanceerrors.ErrInvalidPeriod
	}

	target := DefaultTargetPercent
	if req.TargetPercent != nil {
		target = *req.TargetPercent
	}

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%g:%t",
		ReportCacheKeyPrefix, companyID, req.StartDate, req.EndDate, target, req.CompareToPrevious)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp PeriodReportResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		report, err := s.computeReport(ctx, companyID, start, end, target)
		if err != nil {
			return nil, err
		}

		resp := mapReportToResponse(req.StartDate, req.EndDate, target, report)

		if req.CompareToPrevious {
			prevStart, prevEnd := previousPeriod(start, end)
			prevReport, err := s.computeReport(ctx, companyID, prevStart, prevEnd, target)
			if err != nil {
				// The headline report is still useful without the comparison.
				s.logger.Warn("previous period report failed",
					zap.String("company_id", companyID),
					zap.Error(err),
				)
			} else {
				resp.PreviousPeriod = &PeriodComparison{
					StartDate:          prevStart.Format("2006-01-02"),
					EndDate:            prevEnd.Format("2006-01-02"),
					TotalCost:          prevReport.TotalCost.StringFixed(2),
					TotalRevenue:       prevReport.TotalRevenue.StringFixed(2),
					PerformancePercent: ClampPercent(prevReport.PerformancePercent),
				}
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, reportCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return PeriodReportResponse{}, err
	}

	return v.(PeriodReportResponse), nil
}

func (s *service) computeReport(
	ctx context.Context,
	companyID string,
	start, end time.Time,
	target float64,
) (Report, error) {
	entries, err := s.entries.FindForPeriod(ctx, companyID, start, end)
	if err != nil {
		return Report{}, err
	}

	itemIDs := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		id := entry.WorkItemID.String()
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		itemIDs = append(itemIDs, id)
	}

	items, err := s.items.FindByIDs(ctx, companyID, itemIDs)
	if err != nil {
		return Report{}, err
	}

	workers, err := s.workers.FindAllByCompany(ctx, companyID)
	if err != nil {
		return Report{}, err
	}

	workerIDs := make([]string, len(workers))
	for i, w := range workers {
		workerIDs[i] = w.ID.String()
	}

	rateTable, err := s.rates.ResolveRatesForPeriod(ctx, companyID, workerIDs, start, end)
	if err != nil {
		return Report{}, err
	}

	return Calculate(CalculatorInput{
		Entries:       entries,
		WorkItems:     items,
		Workers:       workers,
		Rates:         rateTable,
		TargetPercent: target,
	}), nil
}

func mapReportToResponse(startDate, endDate string, target float64, report Report) PeriodReportResponse {
	resp := PeriodReportResponse{
		StartDate:          startDate,
		EndDate:            endDate,
		TargetPercent:      target,
		TotalCost:          report.TotalCost.StringFixed(2),
		TotalRevenue:       report.TotalRevenue.StringFixed(2),
		TotalHours:         report.TotalHours,
		PerformancePercent: ClampPercent(report.PerformancePercent),
		ByWorker:           make([]WorkerRow, len(report.ByWorker)),
		ByWorkItem:         make([]WorkItemRow, len(report.ByWorkItem)),
	}

	for i, row := range report.ByWorker {
		resp.ByWorker[i] = WorkerRow{
			WorkerID:           row.WorkerID,
			WorkerName:         row.WorkerName,
			WorkHours:          row.WorkHours,
			Cost:               row.Cost.StringFixed(2),
			Revenue:            row.Revenue.StringFixed(2),
			PerformancePercent: row.PerformancePercent,
		}
	}

	for i, row := range report.ByWorkItem {
		resp.ByWorkItem[i] = WorkItemRow{
			WorkItemID:         row.WorkItemID,
			Name:               row.Name,
			Unit:               row.Unit,
			QuantityDone:       row.QuantityDone,
			QuantityContracted: row.QuantityContracted,
			ProgressPercent:    row.ProgressPercent,
			Cost:               row.Cost.StringFixed(2),
			Revenue:            row.Revenue.StringFixed(2),
		}
	}

	return resp
}

// previousPeriod is the same-length window immediately before the requested
// one.
func previousPeriod(start, end time.Time) (time.Time, time.Time) {
	days := int(end.Sub(start).Hours()/24) + 1
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.AddDate(0, 0, -(days - 1))
	return prevStart, prevEnd
}
