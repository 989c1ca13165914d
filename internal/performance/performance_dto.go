package performance

type PeriodReportRequest struct {
	StartDate         string   `json:"start_date" binding:"required"`
	EndDate           string   `json:"end_date" binding:"required"`
	TargetPercent     *float64 `json:"target_percent"`
	CompareToPrevious bool     `json:"compare_to_previous"`
}

type WorkerRow struct {
	WorkerID           string  `json:"worker_id,omitempty"`
	WorkerName         string  `json:"worker_name"`
	WorkHours          float64 `json:"work_hours"`
	Cost               string  `json:"cost"`
	Revenue            string  `json:"revenue"`
	PerformancePercent float64 `json:"performance_percent"`
}

type WorkItemRow struct {
	WorkItemID         string  `json:"work_item_id"`
	Name               string  `json:"name"`
	Unit               string  `json:"unit"`
	QuantityDone       float64 `json:"quantity_done"`
	QuantityContracted float64 `json:"quantity_contracted"`
	ProgressPercent    float64 `json:"progress_percent"`
	Cost               string  `json:"cost"`
	Revenue            string  `json:"revenue"`
}

type PeriodReportResponse struct {
	StartDate          string        `json:"start_date"`
	EndDate            string        `json:"end_date"`
	TargetPercent      float64       `json:"target_percent"`
	TotalCost          string        `json:"total_cost"`
	TotalRevenue       string        `json:"total_revenue"`
	TotalHours         float64       `json:"total_hours"`
	PerformancePercent float64       `json:"performance_percent"`
	ByWorker           []WorkerRow   `json:"by_worker"`
	ByWorkItem         []WorkItemRow `json:"by_work_item"`

	PreviousPeriod *PeriodComparison `json:"previous_period,omitempty"`
}

type PeriodComparison struct {
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	TotalCost          string  `json:"total_cost"`
	TotalRevenue       string  `json:"total_revenue"`
	PerformancePercent float64 `json:"performance_percent"`
}
