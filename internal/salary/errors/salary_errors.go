package salaryerrors

import (
	"net/http"

	"go-siteworks/internal/shared/apperror"
)

var (
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"Daily rate must be a non-negative amount",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidValidFrom = apperror.New(
		apperror.CodeInvalidInput,
		"Valid-from must be a YYYY-MM-DD date",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"Period start must not be after period end",
		http.StatusUnprocessableEntity,
	)

	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Worker not found",
		http.StatusNotFound,
	)

	ErrLedgerEntryConflict = apperror.New(
		apperror.CodeConflict,
		"A ledger entry for this worker and valid-from date already exists",
		http.StatusConflict,
	)
)
