package salary

type SetRateRequest struct {
	DailyRate string `json:"daily_rate" binding:"required"`
	ValidFrom string `json:"valid_from" binding:"required"`
}

type ResolveRatesRequest struct {
	WorkerIDs []string `json:"worker_ids" binding:"required,min=1"`
	StartDate string   `json:"start_date" binding:"required"`
	EndDate   string   `json:"end_date" binding:"required"`
}

type LedgerEntryResponse struct {
	ID        string `json:"id"`
	WorkerID  string `json:"worker_id"`
	DailyRate string `json:"daily_rate"`
	ValidFrom string `json:"valid_from"`
	CreatedAt string `json:"created_at"`
}

// RateTableResponse serializes a resolved period as
// worker id -> ISO date -> rate string.
type RateTableResponse map[string]map[string]string
