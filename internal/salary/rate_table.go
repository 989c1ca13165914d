package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

const dayFormat = "2006-01-02"

// RateTable holds precomputed daily rates for a worker set over a period:
// worker id -> ISO date -> rate. Days without any qualifying ledger entry are
// 0; the batch path deliberately never falls back to the worker's
// current_daily_rate, unlike the scalar effective-rate lookup. Aggregate
// reports depend on that exact behavior.
type RateTable map[string]map[string]decimal.Decimal

// Rate returns the resolved rate for a worker and day, 0 when either is
// unknown to the table.
func (t RateTable) Rate(workerID string, day time.Time) decimal.Decimal {
	rates, ok := t[workerID]
	if !ok {
		return decimal.Zero
	}
	rate, ok := rates[day.Format(dayFormat)]
	if !ok {
		return decimal.Zero
	}
	return rate
}

// buildRateTable walks each worker's history (newest first, as fetched) and
// the calendar once: O(workers x entries + workers x days).
func buildRateTable(entries []LedgerEntry, workerIDs []string, start, end time.Time) RateTable {
	perWorker := make(map[string][]LedgerEntry, len(workerIDs))
	for _, entry := range entries {
		id := entry.WorkerID.String()
		perWorker[id] = append(perWorker[id], entry)
	}

	start = truncateToDay(start)
	end = truncateToDay(end)

	table := make(RateTable, len(workerIDs))
	for _, workerID := range workerIDs {
		history := perWorker[workerID] // sorted valid_from DESC
		dateMap := make(map[string]decimal.Decimal)

		// Oldest entry sits at the end; advance the cursor as days pass it.
		idx := len(history) - 1
		current := decimal.Zero
		seen := false

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			for idx >= 0 && !truncateToDay(history[idx].ValidFrom).After(day) {
				current = history[idx].DailyRate
				seen = true
				idx--
			}
			if seen {
				dateMap[day.Format(dayFormat)] = current
			} else {
				dateMap[day.Format(dayFormat)] = decimal.Zero
			}
		}

		table[workerID] = dateMap
	}

	return table
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
