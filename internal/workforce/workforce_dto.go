package workforce

type CreateWorkerRequest struct {
	Name      string `json:"name" binding:"required"`
	DailyRate string `json:"daily_rate"`
}

type UpdateWorkerRequest struct {
	Name string `json:"name" binding:"required"`
}

type WorkerResponse struct {
	ID               string `json:"id"`
	CompanyID        string `json:"company_id"`
	Name             string `json:"name"`
	CurrentDailyRate string `json:"current_daily_rate"`
	CreatedAt        string `json:"created_at,omitempty"`
}
