package employee

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hris-backend/internal/auth"
	employeeerrors "hris-backend/internal/employee/errors"
)

type fakeRepo struct {
	createFn           func(ctx context.Context, e *Employee) error
	findAllFn          func(ctx context.Context) ([]Employee, error)
	findByIDFn         func(ctx context.Context, id string) (*Employee, error)
	findByUserIDFn     func(ctx context.Context, userID uuid.UUID) (*Employee, error)
	updateFn           func(ctx context.Context, e *Employee) error
	deleteFn           func(ctx context.Context, id string) error
	departmentExistsFn func(ctx context.Context, departmentID string) (bool, error)
	findUserByEmailFn  func(ctx context.Context, email string) (*auth.User, error)
	createUserFn       func(ctx context.Context, u *auth.User) error
	updateUserFn       func(ctx context.Context, u *auth.User) error
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                 { return f }
func (f *fakeRepo) Create(ctx context.Context, e *Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Employee, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Employee, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error) {
	return f.findByUserIDFn(ctx, userID)
}
func (f *fakeRepo) Update(ctx context.Context, e *Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error   { return f.deleteFn(ctx, id) }
func (f *fakeRepo) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	return f.departmentExistsFn(ctx, departmentID)
}
func (f *fakeRepo) FindUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return f.findUserByEmailFn(ctx, email)
}
func (f *fakeRepo) CreateUser(ctx context.Context, u *auth.User) error { return f.createUserFn(ctx, u) }
func (f *fakeRepo) UpdateUser(ctx context.Context, u *auth.User) error { return f.updateUserFn(ctx, u) }

type fakeCounter struct {
	next int64
}

func (f *fakeCounter) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

func validCreateRequest(deptID string) CreateEmployeeRequest {
	return CreateEmployeeRequest{
		Name:             "Siti Rahayu",
		Email:            "siti@example.com",
		Position:         "Backend Engineer",
		DepartmentID:     deptID,
		JoinDate:         "2025-02-01",
		EmploymentStatus: "permanent",
	}
}

func TestCreate_ProvisionsUserAndProfileInOneTx(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	deptID := uuid.New().String()
	var createdUser *auth.User
	var createdEmployee *Employee

	repo := &fakeRepo{
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
		findUserByEmailFn:  func(ctx context.Context, email string) (*auth.User, error) { return nil, nil },
		createUserFn: func(ctx context.Context, u *auth.User) error {
			createdUser = u
			return nil
		},
		createFn: func(ctx context.Context, e *Employee) error {
			createdEmployee = e
			return nil
		},
	}

	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), validCreateRequest(deptID))
	assert.NoError(t, err)
	assert.NotNil(t, createdUser)
	assert.Equal(t, "EMPLOYEE", createdUser.Role)
	assert.NotNil(t, createdEmployee)
	assert.Equal(t, createdUser.ID, createdEmployee.UserID)
	assert.Equal(t, "EMP-000001", createdEmployee.EmployeeCode)
	assert.Equal(t, "Siti Rahayu", resp.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ReusesExistingUser(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	existing := &auth.User{ID: uuid.New(), Name: "Siti Rahayu", Email: "siti@example.com", Role: "EMPLOYEE"}
	var createdEmployee *Employee

	repo := &fakeRepo{
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
		findUserByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
			return existing, nil
		},
		createUserFn: func(ctx context.Context, u *auth.User) error {
			t.Fatal("should not create a new user")
			return nil
		},
		createFn: func(ctx context.Context, e *Employee) error {
			createdEmployee = e
			return nil
		},
	}

	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := svc.Create(context.Background(), validCreateRequest(uuid.New().String()))
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, createdEmployee.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RollsBackWhenProfileFails(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
		findUserByEmailFn:  func(ctx context.Context, email string) (*auth.User, error) { return nil, nil },
		createUserFn:       func(ctx context.Context, u *auth.User) error { return nil },
		createFn: func(ctx context.Context, e *Employee) error {
			return errors.New("insert failed")
		},
	}

	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCreateRequest(uuid.New().String()))
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownDepartment(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{
		departmentExistsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}

	svc := NewService(db, repo, &fakeCounter{})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validCreateRequest(uuid.New().String()))
	assert.ErrorIs(t, err, employeeerrors.ErrDepartmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
