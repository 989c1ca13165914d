package performanceerrors

import (
	"net/http"

	"go-siteworks/internal/shared/apperror"
)

var (
	ErrInvalidStartDate = apperror.New(
		apperror.CodeInvalidInput,
		"Start date must be a YYYY-MM-DD date",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidEndDate = apperror.New(
		apperror.CodeInvalidInput,
		"End date must be a YYYY-MM-DD date",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"End date must not be before start date",
		http.StatusUnprocessableEntity,
	)
)
