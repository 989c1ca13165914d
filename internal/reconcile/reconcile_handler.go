package reconcile

import (
	"net/http"
	"time"

	reconcileerrors "go-siteworks/internal/reconcile/errors"
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

func (h *Handler) ReconcileWorker(c *gin.Context) {
	companyID := c.GetString("company_id")
	workerID := c.Param("id")

	summary, err := h.service.ReconcileWorker(c.Request.Context(), companyID, workerID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}

func (h *Handler) ReconcileAllWorkers(c *gin.Context) {
	companyID := c.GetString("company_id")

	summary, err := h.service.ReconcileAllWorkers(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}

func (h *Handler) ReconcileSince(c *gin.Context) {
	companyID := c.GetString("company_id")

	var req ReconcileSinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	cutoff, err := time.Parse("2006-01-02", req.Since)
	if err != nil {
		h.writeServiceError(c, reconcileerrors.ErrInvalidCutoff)
		return
	}

	summary, err := h.service.ReconcileSince(c.Request.Context(), companyID, cutoff)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}
