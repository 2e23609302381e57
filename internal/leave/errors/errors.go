package leaveerrors

import (
	"net/http"

	"hris-backend/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEndBeforeStart = apperror.New(
		apperror.CodeInvalidInput,
		"end_date must not be before start_date",
		http.StatusBadRequest,
	)
	ErrInvalidPeriodFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid period format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrAlreadyReviewed = apperror.New(
		apperror.CodeInvalidState,
		"cannot modify a leave request that has already been reviewed",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"you can only modify your own leave requests",
		http.StatusForbidden,
	)
	ErrReviewNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to review this leave request",
		http.StatusForbidden,
	)
	ErrInvalidPhoto = apperror.New(
		apperror.CodeInvalidInput,
		"photo must be a jpg, jpeg or png file under 2MB",
		http.StatusBadRequest,
	)
)
