package diary

type CreateEntryRequest struct {
	WorkItemID string  `json:"work_item_id" binding:"required"`
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name"`
	EntryDate  string  `json:"entry_date" binding:"required"`
	Quantity   float64 `json:"quantity"`
	WorkHours  float64 `json:"work_hours"`
}

type EntryResponse struct {
	ID                string  `json:"id"`
	WorkItemID        string  `json:"work_item_id"`
	WorkerID          *string `json:"worker_id,omitempty"`
	WorkerName        string  `json:"worker_name,omitempty"`
	EntryDate         string  `json:"entry_date"`
	Quantity          float64 `json:"quantity"`
	WorkHours         float64 `json:"work_hours"`
	DailyRateSnapshot string  `json:"daily_rate_snapshot"`
}
