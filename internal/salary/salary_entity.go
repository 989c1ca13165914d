package salary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEntry is an append-only salary fact: worker X earns DailyRate per day
// from ValidFrom (inclusive) until a later entry supersedes it. Entries are
// never deleted; corrections either add a new ValidFrom or overwrite the rate
// at an existing one.
type LedgerEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	WorkerID  uuid.UUID       `gorm:"type:uuid;not null;index:uq_salary_ledger_worker_valid_from,unique"`
	DailyRate decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	ValidFrom time.Time       `gorm:"type:date;not null;index:uq_salary_ledger_worker_valid_from,unique"`

	// CreatedAt records when the fact was written, which is independent of
	// when it takes effect.
	CreatedAt time.Time
}

func (LedgerEntry) TableName() string {
	return "salary_ledger_entries"
}
