package payroll

import (
	payrollerrors "contractor-erp/internal/payroll/errors"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/dberror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dberror.IsUniqueViolation(err, uniqueEmployeePeriod) {
		return payrollerrors.ErrPayrollConflict.WithCause(err)
	}
	if dberror.IsNotFound(err) {
		return payrollerrors.ErrPayrollNotFound
	}
	return apperror.Internal(err)
}
