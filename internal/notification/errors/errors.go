package notificationerrors

import (
	"net/http"

	"hris-backend/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrNotNotificationOwner = apperror.New(
		apperror.CodeForbidden,
		"you can only manage your own notifications",
		http.StatusForbidden,
	)
)
