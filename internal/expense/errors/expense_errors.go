package expenseerrors

import (
	"net/http"

	"contractor-erp/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id must be a valid uuid",
		http.StatusBadRequest,
	)

	ErrExpenseProfileNotFound = apperror.New(
		apperror.CodeNotFound,
		"expense profile not found for employee",
		http.StatusNotFound,
	)

	ErrInvalidExpenseProfile = apperror.New(
		apperror.CodeInvalidInput,
		"expense profile has negative amounts",
		http.StatusUnprocessableEntity,
	)
)
