package workforceerrors

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

	ErrInvalidDailyRate = apperror.New(
		apperror.CodeInvalidInput,
		"Daily rate must be a non-negative amount",
		http.StatusUnprocessableEntity,
	)
)
