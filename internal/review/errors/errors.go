package reviewerrors

import (
	"net/http"

	"hris-backend/internal/shared/apperror"
)

var (
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"performance review not found",
		http.StatusNotFound,
	)
	ErrInvalidReviewID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid performance review id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year, expected YYYY",
		http.StatusBadRequest,
	)
	ErrReviewNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to manage this performance review",
		http.StatusForbidden,
	)
)
