package reconcile_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-siteworks/internal/diary"
	"go-siteworks/internal/reconcile"
	reconcileerrors "go-siteworks/internal/reconcile/errors"
	"go-siteworks/internal/workforce"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEntryRepository struct {
	withTxFn           func(tx *sql.Tx) diary.Repository
	createFn           func(ctx context.Context, entry *diary.Entry) error
	findAllByCompanyFn func(ctx context.Context, companyID string) ([]diary.Entry, error)
	findByWorkerFn     func(ctx context.Context, companyID, workerID string) ([]diary.Entry, error)
	findByWorkerNameFn func(ctx context.Context, companyID, name string) ([]diary.Entry, error)
	findSinceFn        func(ctx context.Context, companyID string, cutoff time.Time) ([]diary.Entry, error)
	findForPeriodFn    func(ctx context.Context, companyID string, start, end time.Time) ([]diary.Entry, error)
	updateSnapshotFn   func(ctx context.Context, id string, rate decimal.Decimal) error
}

func (f *fakeEntryRepository) WithTx(tx *sql.Tx) diary.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEntryRepository) Create(ctx context.Context, entry *diary.Entry) error {
	if f.createFn != nil {
		return f.createFn(ctx, entry)
	}
	return nil
}

func (f *fakeEntryRepository) FindAllByCompany(ctx context.Context, companyID string) ([]diary.Entry, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEntryRepository) FindByWorker(ctx context.Context, companyID, workerID string) ([]diary.Entry, error) {
	if f.findByWorkerFn != nil {
		return f.findByWorkerFn(ctx, companyID, workerID)
	}
	return nil, nil
}

func (f *fakeEntryRepository) FindByWorkerName(ctx context.Context, companyID, name string) ([]diary.Entry, error) {
	if f.findByWorkerNameFn != nil {
		return f.findByWorkerNameFn(ctx, companyID, name)
	}
	return nil, nil
}

func (f *fakeEntryRepository) FindSince(ctx context.Context, companyID string, cutoff time.Time) ([]diary.Entry, error) {
	if f.findSinceFn != nil {
		return f.findSinceFn(ctx, companyID, cutoff)
	}
	return nil, nil
}

func (f *fakeEntryRepository) FindForPeriod(ctx context.Context, companyID string, start, end time.Time) ([]diary.Entry, error) {
	if f.findForPeriodFn != nil {
		return f.findForPeriodFn(ctx, companyID, start, end)
	}
	return nil, nil
}

func (f *fakeEntryRepository) UpdateSnapshot(ctx context.Context, id string, rate decimal.Decimal) error {
	if f.updateSnapshotFn != nil {
		return f.updateSnapshotFn(ctx, id, rate)
	}
	return nil
}

type fakeWorkerDirectory struct {
	withTxFn                 func(tx *sql.Tx) workforce.Repository
	findAllByCompanyFn       func(ctx context.Context, companyID string) ([]workforce.Worker, error)
	findByIDAndCompanyFn     func(ctx context.Context, companyID string, id string) (*workforce.Worker, error)
	findByNameAndCompanyFn   func(ctx context.Context, companyID string, name string) (*workforce.Worker, error)
	updateCurrentDailyRateFn func(ctx context.Context, companyID string, id string, rate decimal.Decimal) error
}

func (f *fakeWorkerDirectory) WithTx(tx *sql.Tx) workforce.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeWorkerDirectory) Create(ctx context.Context, worker *workforce.Worker) error {
	return nil
}

func (f *fakeWorkerDirectory) FindAllByCompany(ctx context.Context, companyID string) ([]workforce.Worker, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeWorkerDirectory) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*workforce.Worker, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerDirectory) FindByNameAndCompany(ctx context.Context, companyID string, name string) (*workforce.Worker, error) {
	if f.findByNameAndCompanyFn != nil {
		return f.findByNameAndCompanyFn(ctx, companyID, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerDirectory) Update(ctx context.Context, worker *workforce.Worker) error {
	return nil
}

func (f *fakeWorkerDirectory) UpdateCurrentDailyRate(ctx context.Context, companyID string, id string, rate decimal.Decimal) error {
	if f.updateCurrentDailyRateFn != nil {
		return f.updateCurrentDailyRateFn(ctx, companyID, id, rate)
	}
	return nil
}

func (f *fakeWorkerDirectory) Delete(ctx context.Context, companyID string, id string) error {
	return nil
}

type rateSourceFunc func(ctx context.Context, companyID, workerID string, asOf time.Time) (decimal.Decimal, error)

func (f rateSourceFunc) GetEffectiveRate(ctx context.Context, companyID, workerID string, asOf time.Time) (decimal.Decimal, error) {
	return f(ctx, companyID, workerID, asOf)
}

func fixedRate(rate int64) rateSourceFunc {
	return func(ctx context.Context, companyID, workerID string, asOf time.Time) (decimal.Decimal, error) {
		return decimal.NewFromInt(rate), nil
	}
}

func entryFor(workerID *uuid.UUID, name string, date time.Time, snapshot int64) diary.Entry {
	return diary.Entry{
		ID:                uuid.New(),
		WorkItemID:        uuid.New(),
		WorkerID:          workerID,
		WorkerName:        name,
		EntryDate:         date,
		WorkHours:         8,
		DailyRateSnapshot: decimal.NewFromInt(snapshot),
	}
}

func TestReconcileService_ReconcileWorker(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()
	worker := &workforce.Worker{ID: workerID, Name: "Kovacs Janos"}
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("rewrites stale snapshots and counts the outcome", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			return worker, nil
		}
		// 20000 and 25000 are stale, 30000 already matches the ledger.
		store := []diary.Entry{
			entryFor(&workerID, worker.Name, march, 20000),
			entryFor(&workerID, worker.Name, march.AddDate(0, 0, 1), 25000),
			entryFor(&workerID, worker.Name, march.AddDate(0, 0, 2), 30000),
		}
		entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
			return store, nil
		}

		updated := map[string]decimal.Decimal{}
		entries.updateSnapshotFn = func(ctx context.Context, id string, rate decimal.Decimal) error {
			updated[id] = rate
			return nil
		}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))
		summary, err := svc.ReconcileWorker(ctx, companyID, workerID.String())

		assert.NoError(t, err)
		assert.Equal(t, 3, summary.TotalItems)
		assert.Equal(t, 2, summary.UpdatedCount)
		assert.Equal(t, 1, summary.SkippedCount)
		assert.Equal(t, 0, summary.FailedCount)
		assert.Len(t, updated, 2)
		for _, rate := range updated {
			assert.True(t, rate.Equal(decimal.NewFromInt(30000)))
		}
	})

	t.Run("resolves every entry at its own date", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			return worker, nil
		}

		// Retroactive history: 20000 until Mar 5, 25000 until Mar 8, then
		// 30000. Entries written before the corrections all carry 20000.
		store := []diary.Entry{
			entryFor(&workerID, worker.Name, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 20000),
			entryFor(&workerID, worker.Name, time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC), 20000),
			entryFor(&workerID, worker.Name, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 20000),
		}
		entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
			return store, nil
		}

		ledger := rateSourceFunc(func(ctx context.Context, cid, wid string, asOf time.Time) (decimal.Decimal, error) {
			switch {
			case asOf.Before(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)):
				return decimal.NewFromInt(20000), nil
			case asOf.Before(time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)):
				return decimal.NewFromInt(25000), nil
			default:
				return decimal.NewFromInt(30000), nil
			}
		})

		updated := map[string]decimal.Decimal{}
		entries.updateSnapshotFn = func(ctx context.Context, id string, rate decimal.Decimal) error {
			updated[id] = rate
			return nil
		}

		svc := reconcile.NewService(entries, workers, ledger)
		summary, err := svc.ReconcileWorker(ctx, companyID, workerID.String())

		assert.NoError(t, err)
		assert.Equal(t, 3, summary.TotalItems)
		assert.Equal(t, 2, summary.UpdatedCount)
		assert.Equal(t, 1, summary.SkippedCount)

		// Snapshots converge to different values per entry date, not to
		// whatever rate is current when the reconciler runs.
		assert.True(t, updated[store[1].ID.String()].Equal(decimal.NewFromInt(25000)))
		assert.True(t, updated[store[2].ID.String()].Equal(decimal.NewFromInt(30000)))
		_, touched := updated[store[0].ID.String()]
		assert.False(t, touched)
	})

	t.Run("second run over converged data updates nothing", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			return worker, nil
		}
		store := []diary.Entry{
			entryFor(&workerID, worker.Name, march, 20000),
			entryFor(&workerID, worker.Name, march.AddDate(0, 0, 1), 20000),
		}
		entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
			return store, nil
		}
		entries.updateSnapshotFn = func(ctx context.Context, id string, rate decimal.Decimal) error {
			for i := range store {
				if store[i].ID.String() == id {
					store[i].DailyRateSnapshot = rate
				}
			}
			return nil
		}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))

		first, err := svc.ReconcileWorker(ctx, companyID, workerID.String())
		assert.NoError(t, err)
		assert.Equal(t, 2, first.UpdatedCount)

		second, err := svc.ReconcileWorker(ctx, companyID, workerID.String())
		assert.NoError(t, err)
		assert.Equal(t, 0, second.UpdatedCount)
		assert.Equal(t, 2, second.SkippedCount)
	})

	t.Run("merges id linked and name matched entries without duplicates", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			return worker, nil
		}

		linked := entryFor(&workerID, worker.Name, march, 10000)
		nameOnly := entryFor(nil, "kovacs janos", march, 10000)
		entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
			return []diary.Entry{linked}, nil
		}
		entries.findByWorkerNameFn = func(ctx context.Context, cid, name string) ([]diary.Entry, error) {
			assert.Equal(t, worker.Name, name)
			return []diary.Entry{linked, nameOnly}, nil
		}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))
		summary, err := svc.ReconcileWorker(ctx, companyID, workerID.String())

		assert.NoError(t, err)
		assert.Equal(t, 2, summary.TotalItems)
		assert.Equal(t, 2, summary.UpdatedCount)
	})

	t.Run("a failing entry does not abort the rest", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			return worker, nil
		}
		bad := entryFor(&workerID, worker.Name, march, 10000)
		good := entryFor(&workerID, worker.Name, march, 10000)
		entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
			return []diary.Entry{bad, good}, nil
		}
		entries.updateSnapshotFn = func(ctx context.Context, id string, rate decimal.Decimal) error {
			if id == bad.ID.String() {
				return errors.New("row lock timeout")
			}
			return nil
		}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))
		summary, err := svc.ReconcileWorker(ctx, companyID, workerID.String())

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.UpdatedCount)
		assert.Equal(t, 1, summary.FailedCount)
	})

	t.Run("cutoff excludes older entries", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			return worker, nil
		}
		old := entryFor(&workerID, worker.Name, march.AddDate(0, -1, 0), 10000)
		recent := entryFor(&workerID, worker.Name, march, 10000)
		entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
			return []diary.Entry{old, recent}, nil
		}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))
		summary, err := svc.ReconcileWorkerSince(ctx, companyID, workerID.String(), march)

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.TotalItems)
		assert.Equal(t, 1, summary.UpdatedCount)
	})

	t.Run("unknown worker", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))
		_, err := svc.ReconcileWorker(ctx, companyID, uuid.New().String())

		assert.ErrorIs(t, err, reconcileerrors.ErrWorkerNotFound)
	})
}

func TestReconcileService_ReconcileAllWorkers(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	aID := uuid.New()
	bID := uuid.New()
	a := workforce.Worker{ID: aID, Name: "Kovacs Janos"}
	b := workforce.Worker{ID: bID, Name: "Nagy Peter"}
	march := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := &fakeEntryRepository{}
	workers := &fakeWorkerDirectory{}

	workers.findAllByCompanyFn = func(ctx context.Context, cid string) ([]workforce.Worker, error) {
		return []workforce.Worker{a, b}, nil
	}
	workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
		switch id {
		case aID.String():
			return &a, nil
		case bID.String():
			return &b, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
	entries.findByWorkerFn = func(ctx context.Context, cid, wid string) ([]diary.Entry, error) {
		switch wid {
		case aID.String():
			return []diary.Entry{entryFor(&aID, a.Name, march, 10000)}, nil
		case bID.String():
			return []diary.Entry{entryFor(&bID, b.Name, march, 30000)}, nil
		}
		return nil, nil
	}

	svc := reconcile.NewService(entries, workers, fixedRate(30000))
	summary, err := svc.ReconcileAllWorkers(ctx, companyID)

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalWorkers)
	assert.Equal(t, 2, summary.TotalItems)
	assert.Equal(t, 1, summary.TotalUpdated)
	assert.Equal(t, 1, summary.TotalSkipped)
	assert.Len(t, summary.PerWorker, 2)
}

func TestReconcileService_ReconcileSince(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()
	worker := &workforce.Worker{ID: workerID, Name: "Kovacs Janos"}
	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("resolves by link then by name and skips the unresolvable", func(t *testing.T) {
		entries := &fakeEntryRepository{}
		workers := &fakeWorkerDirectory{}

		linked := entryFor(&workerID, "", cutoff, 10000)
		named := entryFor(nil, "KOVACS JANOS", cutoff.AddDate(0, 0, 1), 10000)
		orphan := entryFor(nil, "Ismeretlen Ember", cutoff.AddDate(0, 0, 2), 10000)

		entries.findSinceFn = func(ctx context.Context, cid string, got time.Time) ([]diary.Entry, error) {
			assert.Equal(t, cutoff, got)
			return []diary.Entry{linked, named, orphan}, nil
		}
		workers.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*workforce.Worker, error) {
			if id == workerID.String() {
				return worker, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		workers.findByNameAndCompanyFn = func(ctx context.Context, cid, name string) (*workforce.Worker, error) {
			if name == "KOVACS JANOS" {
				return worker, nil
			}
			return nil, gorm.ErrRecordNotFound
		}

		svc := reconcile.NewService(entries, workers, fixedRate(30000))
		summary, err := svc.ReconcileSince(ctx, companyID, cutoff)

		assert.NoError(t, err)
		assert.Equal(t, 3, summary.TotalItems)
		assert.Equal(t, 2, summary.TotalUpdated)
		assert.Equal(t, 1, summary.TotalSkipped)
		assert.Equal(t, 1, summary.TotalWorkers)
	})
}
