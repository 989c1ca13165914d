package diary

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Entry records work performed by one worker on one day against one work
// item. The worker link is either a hard foreign key (WorkerID) or a soft
// name reference (WorkerName) left over from before the worker record was
// bound; both mechanisms stay valid.
type Entry struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	WorkItemID uuid.UUID  `gorm:"type:uuid;not null;index"`
	WorkerID   *uuid.UUID `gorm:"type:uuid;index"`
	WorkerName string     `gorm:"type:varchar(120);index"`

	EntryDate time.Time `gorm:"type:date;not null;index"`
	Quantity  float64   `gorm:"not null;default:0"`
	WorkHours float64   `gorm:"not null;default:0"`

	// DailyRateSnapshot is the ledger rate as resolved when the entry was
	// created or last reconciled. It is a cache; the ledger stays the source
	// of truth, and the reconciler is the only writer after creation.
	DailyRateSnapshot decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Entry) TableName() string {
	return "work_diary_entries"
}
