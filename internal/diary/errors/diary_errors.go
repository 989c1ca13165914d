package diaryerrors

import (
	"net/http"

	"go-siteworks/internal/shared/apperror"
)

var (
	ErrWorkerReferenceRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Either worker_id or worker_name is required",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidEntryDate = apperror.New(
		apperror.CodeInvalidInput,
		"Entry date must be a YYYY-MM-DD date",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidWorkItemID = apperror.New(
		apperror.CodeInvalidInput,
		"Work item id must be a valid UUID",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidWorkerID = apperror.New(
		apperror.CodeInvalidInput,
		"Worker id must be a valid UUID",
		http.StatusUnprocessableEntity,
	)
)
