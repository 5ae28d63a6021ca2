package attendance

import (
	attendanceerrors "contractor-erp/internal/attendance/errors"
	"contractor-erp/internal/shared/apperror"
	"contractor-erp/internal/shared/dberror"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if dberror.IsUniqueViolation(err, uniqueEmployeeDateType) {
		return attendanceerrors.ErrAttendanceConflict.WithCause(err)
	}

	return apperror.Internal(err)
}
