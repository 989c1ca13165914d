package salary

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildRateTable(t *testing.T) {
	workerID := uuid.New()

	t.Run("mid period change switches the rate on the valid_from day", func(t *testing.T) {
		// FindForWorkersUpTo returns valid_from DESC per worker.
		entries := []LedgerEntry{
			{WorkerID: workerID, DailyRate: decimal.NewFromInt(25000), ValidFrom: day(2026, 3, 10)},
			{WorkerID: workerID, DailyRate: decimal.NewFromInt(20000), ValidFrom: day(2026, 3, 1)},
		}

		table := buildRateTable(entries, []string{workerID.String()}, day(2026, 3, 8), day(2026, 3, 12))

		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 8)).Equal(decimal.NewFromInt(20000)))
		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 9)).Equal(decimal.NewFromInt(20000)))
		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 10)).Equal(decimal.NewFromInt(25000)))
		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 12)).Equal(decimal.NewFromInt(25000)))
	})

	t.Run("entry older than the period covers every day", func(t *testing.T) {
		entries := []LedgerEntry{
			{WorkerID: workerID, DailyRate: decimal.NewFromInt(18000), ValidFrom: day(2025, 1, 1)},
		}

		table := buildRateTable(entries, []string{workerID.String()}, day(2026, 3, 1), day(2026, 3, 3))

		for d := 1; d <= 3; d++ {
			assert.True(t, table.Rate(workerID.String(), day(2026, 3, d)).Equal(decimal.NewFromInt(18000)))
		}
	})

	t.Run("days before the first entry resolve to zero", func(t *testing.T) {
		entries := []LedgerEntry{
			{WorkerID: workerID, DailyRate: decimal.NewFromInt(20000), ValidFrom: day(2026, 3, 2)},
		}

		table := buildRateTable(entries, []string{workerID.String()}, day(2026, 3, 1), day(2026, 3, 2))

		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 1)).IsZero())
		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 2)).Equal(decimal.NewFromInt(20000)))
	})

	t.Run("worker without history resolves to zero for the whole period", func(t *testing.T) {
		table := buildRateTable(nil, []string{workerID.String()}, day(2026, 3, 1), day(2026, 3, 5))

		assert.True(t, table.Rate(workerID.String(), day(2026, 3, 3)).IsZero())
	})

	t.Run("unknown worker resolves to zero", func(t *testing.T) {
		table := buildRateTable(nil, nil, day(2026, 3, 1), day(2026, 3, 1))

		assert.True(t, table.Rate(uuid.New().String(), day(2026, 3, 1)).IsZero())
	})

	t.Run("multiple workers keep independent histories", func(t *testing.T) {
		otherID := uuid.New()
		first, second := workerID, otherID
		if second.String() < first.String() {
			first, second = second, first
		}

		entries := []LedgerEntry{
			{WorkerID: first, DailyRate: decimal.NewFromInt(20000), ValidFrom: day(2026, 3, 1)},
			{WorkerID: second, DailyRate: decimal.NewFromInt(30000), ValidFrom: day(2026, 3, 1)},
		}

		table := buildRateTable(entries, []string{first.String(), second.String()}, day(2026, 3, 1), day(2026, 3, 2))

		assert.True(t, table.Rate(first.String(), day(2026, 3, 1)).Equal(decimal.NewFromInt(20000)))
		assert.True(t, table.Rate(second.String(), day(2026, 3, 2)).Equal(decimal.NewFromInt(30000)))
	})

	t.Run("timestamps inside a day hit that day's rate", func(t *testing.T) {
		entries := []LedgerEntry{
			{WorkerID: workerID, DailyRate: decimal.NewFromInt(20000), ValidFrom: day(2026, 3, 1)},
		}

		table := buildRateTable(entries, []string{workerID.String()}, day(2026, 3, 1), day(2026, 3, 1))

		noon := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
		assert.True(t, table.Rate(workerID.String(), noon).Equal(decimal.NewFromInt(20000)))
	})
}
