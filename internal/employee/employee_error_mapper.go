package employee

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	employeeerrors "hris-backend/internal/employee/errors"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "uq_employee_code":
				return employeeerrors.ErrEmployeeCodeAlreadyExists
			case "uq_employee_user":
				return employeeerrors.ErrUserAlreadyLinked
			case "uq_user_email":
				return employeeerrors.ErrEmailAlreadyRegistered
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "uq_employee_code"):
			return employeeerrors.ErrEmployeeCodeAlreadyExists
		case strings.Contains(errMsg, "uq_employee_user"):
			return employeeerrors.ErrUserAlreadyLinked
		case strings.Contains(errMsg, "uq_user_email"):
			return employeeerrors.ErrEmailAlreadyRegistered
		}
	}

	return err
}
