package employee

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"hris-backend/internal/auth"
	"hris-backend/internal/domain"
	employeeerrors "hris-backend/internal/employee/errors"
	"hris-backend/internal/shared/contextutil"
	"hris-backend/internal/shared/counter"
)

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeListItem, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	GetMe(ctx context.Context, actorID string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, counter: counter, logger: l}
}

// Create provisions the user account and the employee profile in one
// transaction. A user that already exists (by email) is reused as long as it
// has no profile yet; otherwise a fresh Employee-role user is created with
// the supplied (or a generated) password.
func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("department_id", req.DepartmentID),
	)

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !exists {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	user, err := qtx.FindUserByEmail(ctx, req.Email)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if user == nil {
		password := req.Password
		if password == "" {
			password = uuid.NewString()
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}

		user = &auth.User{
			ID:       uuid.New(),
			Name:     req.Name,
			Email:    req.Email,
			Password: string(hash),
			Role:     string(domain.RoleEmployee),
			IsActive: true,
		}
		if err := qtx.CreateUser(ctx, user); err != nil {
			s.logger.Error("create employee user persist failed", zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
	}

	if req.EmployeeCode == "" {
		nextVal, err := s.counter.GetNextValue(ctx, "employee_code")
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeCode = fmt.Sprintf("EMP-%06d", nextVal)
	}

	empl := &Employee{
		ID:               uuid.New(),
		UserID:           user.ID,
		EmployeeCode:     req.EmployeeCode,
		Position:         req.Position,
		DepartmentID:     uuid.MustParse(req.DepartmentID),
		JoinDate:         joinDate,
		EmploymentStatus: req.EmploymentStatus,
		Phone:            req.Phone,
		Address:          req.Address,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	empl.User = &UserRef{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeListItem, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	items := make([]EmployeeListItem, len(employees))
	for i, e := range employees {
		items[i] = mapToListItem(e)
	}
	return items, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) GetMe(ctx context.Context, actorID string) (EmployeeResponse, error) {
	userID, err := uuid.Parse(actorID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidJoinDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	exists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if !exists {
		return EmployeeResponse{}, employeeerrors.ErrDepartmentNotFound
	}

	// Profile and principal are updated together or not at all.
	if empl.User != nil && (empl.User.Name != req.Name || empl.User.Email != req.Email) {
		user := &auth.User{
			ID:       empl.User.ID,
			Name:     req.Name,
			Email:    req.Email,
			Role:     empl.User.Role,
			IsActive: true,
		}
		var existing *auth.User
		existing, err = qtx.FindUserByEmail(ctx, req.Email)
		if err != nil {
			return EmployeeResponse{}, err
		}
		if existing != nil && existing.ID != empl.User.ID {
			return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyRegistered
		}
		if existing != nil {
			user.Password = existing.Password
			user.CreatedAt = existing.CreatedAt
		}
		if err := qtx.UpdateUser(ctx, user); err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		empl.User.Name = req.Name
		empl.User.Email = req.Email
	}

	empl.Position = req.Position
	empl.DepartmentID = uuid.MustParse(req.DepartmentID)
	empl.JoinDate = joinDate
	empl.EmploymentStatus = req.EmploymentStatus
	empl.Phone = req.Phone
	empl.Address = req.Address

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID.String(),
		UserID:           e.UserID.String(),
		EmployeeCode:     e.EmployeeCode,
		Position:         e.Position,
		DepartmentID:     e.DepartmentID.String(),
		JoinDate:         e.JoinDate.Format("2006-01-02"),
		EmploymentStatus: e.EmploymentStatus,
		Phone:            e.Phone,
		Address:          e.Address,
	}
	if e.User != nil {
		resp.Name = e.User.Name
		resp.Email = e.User.Email
	}
	if e.Department != nil {
		resp.DepartmentName = e.Department.Name
	}
	return resp
}

func mapToListItem(e Employee) EmployeeListItem {
	item := EmployeeListItem{
		ID:               e.ID.String(),
		EmployeeCode:     e.EmployeeCode,
		Position:         e.Position,
		EmploymentStatus: e.EmploymentStatus,
	}
	if e.User != nil {
		item.Name = e.User.Name
	}
	if e.Department != nil {
		item.DepartmentName = e.Department.Name
	}
	return item
}
