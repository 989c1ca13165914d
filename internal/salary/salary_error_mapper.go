package salary

import (
	"errors"
	"strings"

	salaryerrors "go-siteworks/internal/salary/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_ledger_worker_valid_from" {
			return salaryerrors.ErrLedgerEntryConflict
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_ledger_worker_valid_from") {
		return salaryerrors.ErrLedgerEntryConflict
	}

	return err
}
