package workforce

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Worker struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(120);not null;index:idx_workers_company_name"`

	// CurrentDailyRate mirrors the most recently written ledger entry. It is
	// a read-path cache kept for backward compatibility; the ledger is the
	// source of truth.
	CurrentDailyRate decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Worker) TableName() string {
	return "workers"
}
