package salary

import (
	"net/http"
	"time"

	"go-siteworks/internal/shared/apperror"
	"go-siteworks/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) SetRate(c *gin.Context) {
	companyID := c.GetString("company_id")
	workerID := c.Param("id")

	var req SetRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.SetRate(c.Request.Context(), companyID, workerID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	workerID := c.Param("id")

	resp, err := h.service.GetSalaryHistory(ctx, companyID, workerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEffectiveRate(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	workerID := c.Param("id")

	asOf := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid date format, expected YYYY-MM-DD", nil)
			return
		}
		asOf = parsed
	}

	rate, err := h.service.GetEffectiveRate(ctx, companyID, workerID, asOf)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"worker_id":  workerID,
		"date":       asOf.Format("2006-01-02"),
		"daily_rate": rate.StringFixed(2),
	}, nil)
}

func (h *Handler) ResolveRates(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var req ResolveRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid start_date format, expected YYYY-MM-DD", nil)
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid end_date format, expected YYYY-MM-DD", nil)
		return
	}

	table, err := h.service.ResolveRatesForPeriod(ctx, companyID, req.WorkerIDs, start, end)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	resp := make(RateTableResponse, len(table))
	for workerID, rates := range table {
		dayRates := make(map[string]string, len(rates))
		for day, rate := range rates {
			dayRates[day] = rate.StringFixed(2)
		}
		resp[workerID] = dayRates
	}

	response.Success(c, http.StatusOK, resp, nil)
}
