package reconcileerrors

import (
	"net/http"

	"go-siteworks/internal/shared/apperror"
)

var (
	ErrWorkerNotFound = apperror.New(
		apperror.CodeNotFound,
		"Worker not found",
		http.StatusNotFound,
	)

	ErrInvalidCutoff = apperror.New(
		apperror.CodeInvalidInput,
		"Cutoff date must be a valid YYYY-MM-DD date",
		http.StatusUnprocessableEntity,
	)
)
