package events

import "time"

const SalaryRateChangedTopic = "siteworks.salary.rate.v1"

// SalaryRateChangedEvent is emitted whenever a ledger entry is written,
// including retroactive corrections. ValidFrom doubles as the reconciliation
// cutoff: only diary entries dated on or after it can have drifted.
type SalaryRateChangedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	CompanyID  string    `json:"company_id"`
	WorkerID   string    `json:"worker_id"`
	DailyRate  string    `json:"daily_rate"`
	ValidFrom  string    `json:"valid_from"`
	OccurredAt time.Time `json:"occurred_at"`
}
