package workitem

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkItem is a catalogue line on a site project: a named deliverable with a
// contracted quantity and unit price. Diary entries reference it to report
// daily progress.
type WorkItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(160);not null"`
	Unit      string          `gorm:"type:varchar(32);not null"`
	Quantity  float64         `gorm:"type:numeric(14,3);not null;default:0"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (WorkItem) TableName() string {
	return "work_items"
}
