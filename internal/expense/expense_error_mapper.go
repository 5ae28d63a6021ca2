package expense

import (
	expenseerrors "contractor-erp/internal/expense/errors"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/dberror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if dberror.IsNotFound(err) {
		return expenseerrors.ErrExpenseProfileNotFound
	}
	return apperror.Internal(err)
}
