// Package identity maps an authenticated user id to a fully resolved
// domain.Actor and resolves workflow subjects back to the user behind them.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hris-backend/internal/domain"
	"hris-backend/internal/shared/apperror"
)

type Resolver interface {
	// Resolve loads the actor for an authenticated user id. Inactive or
	// unknown users resolve to Unauthorized.
	Resolve(ctx context.Context, userID string) (domain.Actor, error)

	// ResolveSubject maps a subject id (an employee profile id, or the user
	// id of a profile-less AdminHR acting as itself) to the user behind it.
	ResolveSubject(ctx context.Context, subjectID uuid.UUID) (domain.Subject, error)
}

type resolver struct {
	repo   Repository
	logger *zap.Logger
}

func NewResolver(repo Repository, logger ...*zap.Logger) Resolver {
	l := zap.L().Named("identity.resolver")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.resolver")
	}
	return &resolver{repo: repo, logger: l}
}

func (r *resolver) Resolve(ctx context.Context, userID string) (domain.Actor, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return domain.Actor{}, apperror.ErrUnauthorized
	}

	user, err := r.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Actor{}, apperror.ErrUnauthorized
		}
		return domain.Actor{}, err
	}
	if !user.IsActive {
		r.logger.Warn("inactive user rejected", zap.String("user_id", userID))
		return domain.Actor{}, apperror.ErrUnauthorized
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		r.logger.Error("user has unknown role",
			zap.String("user_id", userID),
			zap.String("role", user.Role),
		)
		return domain.Actor{}, apperror.ErrInternal
	}

	actor := domain.Actor{UserID: user.ID, Role: role}

	empl, err := r.repo.GetEmployeeByUserID(ctx, id)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Actor{}, err
	}
	if empl != nil {
		eid := empl.ID
		actor.EmployeeID = &eid
	}

	if role == domain.RoleManager {
		depts, err := r.repo.GetManagedDepartmentIDs(ctx, id)
		if err != nil {
			return domain.Actor{}, err
		}
		actor.ManagedDepartments = depts
	}

	return actor, nil
}

func (r *resolver) ResolveSubject(ctx context.Context, subjectID uuid.UUID) (domain.Subject, error) {
	empl, err := r.repo.GetEmployeeByID(ctx, subjectID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Subject{}, err
	}

	var userID uuid.UUID
	subject := domain.Subject{}
	if empl != nil {
		userID = empl.UserID
		if empl.DepartmentID != nil {
			subject.DepartmentID = *empl.DepartmentID
		}
	} else {
		// No employee profile under this id: the aliasing rule means it may
		// be the user id of a profile-less AdminHR.
		userID = subjectID
	}

	user, err := r.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Subject{}, apperror.ErrNotFound
		}
		return domain.Subject{}, err
	}

	role, err := domain.ParseRole(user.Role)
	if err != nil {
		return domain.Subject{}, apperror.ErrInternal
	}

	subject.UserID = user.ID
	subject.Role = role
	return subject, nil
}
