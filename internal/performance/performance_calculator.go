package performance

import (
	"strings"

	"go-siteworks/internal/diary"
	"go-siteworks/internal/salary"
	"go-siteworks/internal/workforce"
	"go-siteworks/internal/workitem"

	"github.com/shopspring/decimal"
)

// DefaultTargetPercent is the profit target assumed when a report request
// does not name one.
const DefaultTargetPercent = 50.0

const hoursPerDay = 8

// CalculatorInput carries everything a period report needs. Calculate does
// no I/O; the service loads and the calculator only computes.
type CalculatorInput struct {
	Entries       []diary.Entry
	WorkItems     []workitem.WorkItem
	Workers       []workforce.Worker
	Rates         salary.RateTable
	TargetPercent float64
}

type WorkerPerformance struct {
	WorkerID           string          `json:"worker_id,omitempty"`
	WorkerName         string          `json:"worker_name"`
	WorkHours          float64         `json:"work_hours"`
	Cost               decimal.Decimal `json:"cost"`
	Revenue            decimal.Decimal `json:"revenue"`
	PerformancePercent float64         `json:"performance_percent"`
}

type WorkItemPerformance struct {
	WorkItemID         string          `json:"work_item_id"`
	Name               string          `json:"name"`
	Unit               string          `json:"unit"`
	QuantityDone       float64         `json:"quantity_done"`
	QuantityContracted float64         `json:"quantity_contracted"`
	ProgressPercent    float64         `json:"progress_percent"`
	Cost               decimal.Decimal `json:"cost"`
	Revenue            decimal.Decimal `json:"revenue"`
}

// Report is the raw aggregation result. PerformancePercent here is
// unclamped; the service clamps the headline figure before it leaves the
// API.
type Report struct {
	TotalCost          decimal.Decimal
	TotalRevenue       decimal.Decimal
	TotalHours         float64
	PerformancePercent float64
	ByWorker           []WorkerPerformance
	ByWorkItem         []WorkItemPerformance
}

// Calculate aggregates diary entries into cost, revenue and performance
// figures for one period.
//
// Cost is work hours priced at the daily rate divided by eight. A resolved
// worker is priced from the rate table; an entry with no resolvable worker
// falls back to its own frozen snapshot. Revenue is entry quantity times the
// work item's unit price, counted only for items with a positive unit price
// and a positive contracted quantity.
func Calculate(in CalculatorInput) Report {
	byID := make(map[string]*workforce.Worker, len(in.Workers))
	byName := make(map[string]*workforce.Worker, len(in.Workers))
	for i := range in.Workers {
		w := &in.Workers[i]
		byID[w.ID.String()] = w
		byName[strings.ToLower(w.Name)] = w
	}

	items := make(map[string]*workitem.WorkItem, len(in.WorkItems))
	for i := range in.WorkItems {
		items[in.WorkItems[i].ID.String()] = &in.WorkItems[i]
	}

	eight := decimal.NewFromInt(hoursPerDay)

	workerRows := make(map[string]*WorkerPerformance)
	itemRows := make(map[string]*WorkItemPerformance)
	workerOrder := make([]string, 0)
	itemOrder := make([]string, 0)

	report := Report{
		TotalCost:    decimal.Zero,
		TotalRevenue: decimal.Zero,
	}

	for _, entry := range in.Entries {
		worker := resolveEntryWorker(entry, byID, byName)

		var dailyRate decimal.Decimal
		if worker != nil {
			dailyRate = in.Rates.Rate(worker.ID.String(), entry.EntryDate)
		} else {
			dailyRate = entry.DailyRateSnapshot
		}

		hours := decimal.NewFromFloat(entry.WorkHours)
		cost := hours.Mul(dailyRate.Div(eight))

		revenue := decimal.Zero
		item := items[entry.WorkItemID.String()]
		if item != nil && item.UnitPrice.IsPositive() && item.Quantity > 0 {
			revenue = decimal.NewFromFloat(entry.Quantity).Mul(item.UnitPrice)
		}

		report.TotalCost = report.TotalCost.Add(cost)
		report.TotalRevenue = report.TotalRevenue.Add(revenue)
		report.TotalHours += entry.WorkHours

		rowKey := workerRowKey(entry, worker)
		row, ok := workerRows[rowKey]
		if !ok {
			row = &WorkerPerformance{
				WorkerName: rowKey,
				Cost:       decimal.Zero,
				Revenue:    decimal.Zero,
			}
			if worker != nil {
				row.WorkerID = worker.ID.String()
				row.WorkerName = worker.Name
			}
			workerRows[rowKey] = row
			workerOrder = append(workerOrder, rowKey)
		}
		row.WorkHours += entry.WorkHours
		row.Cost = row.Cost.Add(cost)
		row.Revenue = row.Revenue.Add(revenue)

		if item != nil {
			itemKey := item.ID.String()
			itemRow, ok := itemRows[itemKey]
			if !ok {
				itemRow = &WorkItemPerformance{
					WorkItemID:         itemKey,
					Name:               item.Name,
					Unit:               item.Unit,
					QuantityContracted: item.Quantity,
					Cost:               decimal.Zero,
					Revenue:            decimal.Zero,
				}
				itemRows[itemKey] = itemRow
				itemOrder = append(itemOrder, itemKey)
			}
			itemRow.QuantityDone += entry.Quantity
			itemRow.Cost = itemRow.Cost.Add(cost)
			itemRow.Revenue = itemRow.Revenue.Add(revenue)
		}
	}

	report.ByWorker = make([]WorkerPerformance, 0, len(workerOrder))
	for _, key := range workerOrder {
		row := workerRows[key]
		row.PerformancePercent = performancePercent(row.Revenue, row.Cost, in.TargetPercent)
		report.ByWorker = append(report.ByWorker, *row)
	}

	report.ByWorkItem = make([]WorkItemPerformance, 0, len(itemOrder))
	for _, key := range itemOrder {
		row := itemRows[key]
		if row.QuantityContracted > 0 {
			row.ProgressPercent = row.QuantityDone / row.QuantityContracted * 100
		}
		report.ByWorkItem = append(report.ByWorkItem, *row)
	}

	report.PerformancePercent = performancePercent(report.TotalRevenue, report.TotalCost, in.TargetPercent)

	return report
}

// ClampPercent bounds a headline performance figure to [0, 200].
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 200 {
		return 200
	}
	return v
}

// performancePercent measures realized profit against the target margin.
// 100 means the period hit its target exactly; zero cost or a non-positive
// target yields zero.
func performancePercent(revenue, cost decimal.Decimal, targetPercent float64) float64 {
	if !cost.IsPositive() {
		return 0
	}
	targetRatio := targetPercent / 100
	if targetRatio <= 0 {
		return 0
	}
	profitRatio, _ := revenue.Div(cost).Sub(decimal.NewFromInt(1)).Float64()
	return profitRatio / targetRatio * 100
}

func resolveEntryWorker(
	entry diary.Entry,
	byID map[string]*workforce.Worker,
	byName map[string]*workforce.Worker,
) *workforce.Worker {
	if entry.WorkerID != nil {
		if w, ok := byID[entry.WorkerID.String()]; ok {
			return w
		}
	}
	if entry.WorkerName != "" {
		if w, ok := byName[strings.ToLower(entry.WorkerName)]; ok {
			return w
		}
	}
	return nil
}

func workerRowKey(entry diary.Entry, worker *workforce.Worker) string {
	if worker != nil {
		return worker.ID.String()
	}
	if entry.WorkerName != "" {
		return entry.WorkerName
	}
	return "(unassigned)"
}
