package employee

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hris-backend/internal/auth"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)

	// Principal side of the one-to-one pair; shares the service transaction
	// so a half-created user never survives an employee failure.
	FindUserByEmail(ctx context.Context, email string) (*auth.User, error)
	CreateUser(ctx context.Context, u *auth.User) error
	UpdateUser(ctx context.Context, u *auth.User) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// session returns a gorm handle bound to the service transaction when one is
// active.
func (r *repository) session(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, Context: ctx})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.session(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Joins("JOIN users ON users.id = employees.user_id").
		Order("users.name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.session(ctx).
		Preload("User").
		Preload("Department").
		First(&e, "employees.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		First(&e, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.session(ctx).Omit("User", "Department").Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.session(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	var count int64
	err := r.session(ctx).
		Table("departments").
		Where("id = ?", departmentID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	err := r.session(ctx).First(&u, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) CreateUser(ctx context.Context, u *auth.User) error {
	return r.session(ctx).Create(u).Error
}

func (r *repository) UpdateUser(ctx context.Context, u *auth.User) error {
	return r.session(ctx).Save(u).Error
}
