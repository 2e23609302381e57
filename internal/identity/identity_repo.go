package identity

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRow struct {
	ID       uuid.UUID
	Name     string
	Role     string
	IsActive bool
}

type EmployeeRow struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	DepartmentID *uuid.UUID
}

type Repository interface {
	GetUser(ctx context.Context, id uuid.UUID) (*UserRow, error)
	GetEmployeeByUserID(ctx context.Context, userID uuid.UUID) (*EmployeeRow, error)
	GetEmployeeByID(ctx context.Context, id uuid.UUID) (*EmployeeRow, error)
	GetManagedDepartmentIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetUser(ctx context.Context, id uuid.UUID) (*UserRow, error) {
	var row UserRow
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id", "name", "role", "is_active").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) GetEmployeeByUserID(ctx context.Context, userID uuid.UUID) (*EmployeeRow, error) {
	var row EmployeeRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "user_id", "department_id").
		Where("user_id = ?", userID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*EmployeeRow, error) {
	var row EmployeeRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "user_id", "department_id").
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) GetManagedDepartmentIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("manager_id = ?", userID).
		Pluck("id", &ids).Error
	return ids, err
}
