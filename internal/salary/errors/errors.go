package salaryerrors

import (
	"net/http"

	"hris-backend/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary slip not found",
		http.StatusNotFound,
	)
	ErrInvalidSalaryID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary slip id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"salary slip already exists for this employee and period",
		http.StatusConflict,
	)
)
