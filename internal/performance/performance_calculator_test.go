package performance_test

import (
	"testing"
	"time"

	"go-siteworks/internal/diary"
	"go-siteworks/internal/performance"
	"go-siteworks/internal/salary"
	"go-siteworks/internal/workforce"
	"go-siteworks/internal/workitem"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var march10 = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func rateTableFor(workerID string, days map[string]int64) salary.RateTable {
	rates := make(map[string]decimal.Decimal, len(days))
	for day, rate := range days {
		rates[day] = decimal.NewFromInt(rate)
	}
	return salary.RateTable{workerID: rates}
}

func TestCalculate(t *testing.T) {
	workerID := uuid.New()
	worker := workforce.Worker{ID: workerID, Name: "Kovacs Janos"}
	item := workitem.WorkItem{
		ID:        uuid.New(),
		Name:      "Brickwork",
		Unit:      "m2",
		Quantity:  100,
		UnitPrice: decimal.NewFromInt(3000),
	}

	t.Run("prices hours at one eighth of the daily rate", func(t *testing.T) {
		entry := diary.Entry{
			ID:         uuid.New(),
			WorkItemID: item.ID,
			WorkerID:   &workerID,
			EntryDate:  march10,
			Quantity:   10,
			WorkHours:  4,
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{item},
			Workers:       []workforce.Worker{worker},
			Rates:         rateTableFor(workerID.String(), map[string]int64{"2026-03-10": 16000}),
			TargetPercent: performance.DefaultTargetPercent,
		})

		// 4h at 16000/day = 8000
		assert.Equal(t, "8000", report.TotalCost.String())
		assert.Equal(t, "30000", report.TotalRevenue.String())
		assert.Equal(t, 4.0, report.TotalHours)
	})

	t.Run("revenue equal to cost scores zero against the default target", func(t *testing.T) {
		entry := diary.Entry{
			ID:         uuid.New(),
			WorkItemID: item.ID,
			WorkerID:   &workerID,
			EntryDate:  march10,
			Quantity:   8, // 8 x 3000 = 24000 revenue
			WorkHours:  8, // 24000 cost at 24000/day
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{item},
			Workers:       []workforce.Worker{worker},
			Rates:         rateTableFor(workerID.String(), map[string]int64{"2026-03-10": 24000}),
			TargetPercent: performance.DefaultTargetPercent,
		})

		assert.InDelta(t, 0, report.PerformancePercent, 0.0001)
	})

	t.Run("hitting the target margin exactly scores one hundred", func(t *testing.T) {
		// 24000 cost, 36000 revenue: 50% profit against a 50% target.
		entry := diary.Entry{
			ID:         uuid.New(),
			WorkItemID: item.ID,
			WorkerID:   &workerID,
			EntryDate:  march10,
			Quantity:   12,
			WorkHours:  8,
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{item},
			Workers:       []workforce.Worker{worker},
			Rates:         rateTableFor(workerID.String(), map[string]int64{"2026-03-10": 24000}),
			TargetPercent: performance.DefaultTargetPercent,
		})

		assert.InDelta(t, 100, report.PerformancePercent, 0.0001)
	})

	t.Run("zero cost yields zero instead of dividing", func(t *testing.T) {
		entry := diary.Entry{
			ID:         uuid.New(),
			WorkItemID: item.ID,
			WorkerID:   &workerID,
			EntryDate:  march10,
			Quantity:   10,
			WorkHours:  0,
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{item},
			Workers:       []workforce.Worker{worker},
			Rates:         salary.RateTable{},
			TargetPercent: performance.DefaultTargetPercent,
		})

		assert.Equal(t, 0.0, report.PerformancePercent)
	})

	t.Run("unresolved worker falls back to the frozen snapshot", func(t *testing.T) {
		entry := diary.Entry{
			ID:                uuid.New(),
			WorkItemID:        item.ID,
			WorkerName:        "Ismeretlen Ember",
			EntryDate:         march10,
			WorkHours:         8,
			DailyRateSnapshot: decimal.NewFromInt(12000),
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{item},
			Workers:       []workforce.Worker{worker},
			Rates:         salary.RateTable{},
			TargetPercent: performance.DefaultTargetPercent,
		})

		assert.Equal(t, "12000", report.TotalCost.String())
		if assert.Len(t, report.ByWorker, 1) {
			assert.Equal(t, "Ismeretlen Ember", report.ByWorker[0].WorkerName)
			assert.Empty(t, report.ByWorker[0].WorkerID)
		}
	})

	t.Run("name only entry matching a worker uses the rate table", func(t *testing.T) {
		entry := diary.Entry{
			ID:                uuid.New(),
			WorkItemID:        item.ID,
			WorkerName:        "KOVACS JANOS",
			EntryDate:         march10,
			WorkHours:         8,
			DailyRateSnapshot: decimal.NewFromInt(12000), // stale, must be ignored
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{item},
			Workers:       []workforce.Worker{worker},
			Rates:         rateTableFor(workerID.String(), map[string]int64{"2026-03-10": 20000}),
			TargetPercent: performance.DefaultTargetPercent,
		})

		assert.Equal(t, "20000", report.TotalCost.String())
		if assert.Len(t, report.ByWorker, 1) {
			assert.Equal(t, workerID.String(), report.ByWorker[0].WorkerID)
		}
	})

	t.Run("unpriced work items contribute no revenue", func(t *testing.T) {
		free := workitem.WorkItem{
			ID:       uuid.New(),
			Name:     "Site cleanup",
			Unit:     "h",
			Quantity: 10,
		}
		entry := diary.Entry{
			ID:         uuid.New(),
			WorkItemID: free.ID,
			WorkerID:   &workerID,
			EntryDate:  march10,
			Quantity:   5,
			WorkHours:  8,
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:       []diary.Entry{entry},
			WorkItems:     []workitem.WorkItem{free},
			Workers:       []workforce.Worker{worker},
			Rates:         rateTableFor(workerID.String(), map[string]int64{"2026-03-10": 16000}),
			TargetPercent: performance.DefaultTargetPercent,
		})

		assert.True(t, report.TotalRevenue.IsZero())
	})

	t.Run("progress tracks done quantity against the contracted one", func(t *testing.T) {
		entries := []diary.Entry{
			{ID: uuid.New(), WorkItemID: item.ID, WorkerID: &workerID, EntryDate: march10, Quantity: 30, WorkHours: 8},
			{ID: uuid.New(), WorkItemID: item.ID, WorkerID: &workerID, EntryDate: march10.AddDate(0, 0, 1), Quantity: 20, WorkHours: 8},
		}

		report := performance.Calculate(performance.CalculatorInput{
			Entries:   entries,
			WorkItems: []workitem.WorkItem{item},
			Workers:   []workforce.Worker{worker},
			Rates: rateTableFor(workerID.String(), map[string]int64{
				"2026-03-10": 16000,
				"2026-03-11": 16000,
			}),
			TargetPercent: performance.DefaultTargetPercent,
		})

		if assert.Len(t, report.ByWorkItem, 1) {
			assert.Equal(t, 50.0, report.ByWorkItem[0].QuantityDone)
			assert.InDelta(t, 50, report.ByWorkItem[0].ProgressPercent, 0.0001)
		}
	})
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, performance.ClampPercent(-40))
	assert.Equal(t, 125.5, performance.ClampPercent(125.5))
	assert.Equal(t, 200.0, performance.ClampPercent(900))
}
