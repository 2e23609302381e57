package departmenterrors

import (
	"net/http"

	"hris-backend/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameTaken = apperror.New(
		apperror.CodeConflict,
		"a department with this name already exists",
		http.StatusConflict,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"manager user not found",
		http.StatusBadRequest,
	)
	ErrManagerRoleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"assigned manager must hold the manager role",
		http.StatusBadRequest,
	)
	ErrDepartmentNotEmpty = apperror.New(
		apperror.CodeConflict,
		"department still has employees assigned",
		http.StatusConflict,
	)
)
