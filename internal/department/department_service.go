package department

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	departmenterrors "hris-backend/internal/department/errors"
	"hris-backend/internal/domain"
)

type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("create department requested", zap.String("name", req.Name))

	managerID, err := s.validateManager(ctx, req.ManagerID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		ManagerID:   managerID,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create department success", zap.String("department_id", d.ID.String()))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	managerID, err := s.validateManager(ctx, req.ManagerID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d.Name = req.Name
	d.Description = req.Description
	d.ManagerID = managerID
	d.Manager = nil

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("update department persist failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update department success", zap.String("department_id", id))
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	count, err := s.repo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return departmenterrors.ErrDepartmentNotEmpty
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete department failed", zap.String("department_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete department success", zap.String("department_id", id))
	return nil
}

// validateManager checks the assigned manager exists and actually holds the
// Manager role. departments.manager_id is the single source of truth for
// "who manages what", so bad assignments are rejected at the door.
func (s *service) validateManager(ctx context.Context, managerID *string) (*uuid.UUID, error) {
	if managerID == nil || *managerID == "" {
		return nil, nil
	}

	id, err := uuid.Parse(*managerID)
	if err != nil {
		return nil, departmenterrors.ErrManagerNotFound
	}

	role, err := s.repo.GetUserRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return nil, departmenterrors.ErrManagerNotFound
	}
	if role != string(domain.RoleManager) {
		return nil, departmenterrors.ErrManagerRoleRequired
	}

	return &id, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return departmenterrors.ErrDepartmentNameTaken
	}
	if strings.Contains(strings.ToLower(err.Error()), "uq_department_name") {
		return departmenterrors.ErrDepartmentNameTaken
	}

	return err
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
	}
	if d.ManagerID != nil {
		v := d.ManagerID.String()
		resp.ManagerID = &v
	}
	if d.Manager != nil {
		resp.ManagerName = d.Manager.Name
	}
	return resp
}
