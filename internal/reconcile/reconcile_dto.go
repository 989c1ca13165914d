package reconcile

// WorkerSummary reports the outcome of reconciling one worker's diary
// entries against the salary ledger.
type WorkerSummary struct {
	WorkerID     string `json:"worker_id"`
	WorkerName   string `json:"worker_name"`
	TotalItems   int    `json:"total_items"`
	UpdatedCount int    `json:"updated_count"`
	SkippedCount int    `json:"skipped_count"`
	FailedCount  int    `json:"failed_count"`
}

// TenantSummary aggregates per-worker results for a company-wide run.
type TenantSummary struct {
	TotalWorkers int             `json:"total_workers"`
	TotalItems   int             `json:"total_items"`
	TotalUpdated int             `json:"total_updated"`
	TotalSkipped int             `json:"total_skipped"`
	TotalFailed  int             `json:"total_failed"`
	PerWorker    []WorkerSummary `json:"per_worker"`
}

type ReconcileSinceRequest struct {
	Since string `json:"since" binding:"required"`
}
