package attendanceerrors

import (
	"net/http"

	"contractor-erp/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from must not be after to",
		http.StatusBadRequest,
	)
	ErrInvalidWorkingHours = apperror.New(
		apperror.CodeInvalidInput,
		"working hours must be between 0 and 24",
		http.StatusBadRequest,
	)
	ErrInvalidRecordType = apperror.New(
		apperror.CodeInvalidInput,
		"record type must be NORMAL or PROJECT",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrAttendanceConflict = apperror.New(
		apperror.CodeConflict,
		"attendance already recorded for this employee, date and type",
		http.StatusConflict,
	)
)
