package department

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	departmenterrors "hris-backend/internal/department/errors"
)

type fakeRepo struct {
	createFn         func(ctx context.Context, d *Department) error
	findAllFn        func(ctx context.Context) ([]Department, error)
	findByIDFn       func(ctx context.Context, id string) (*Department, error)
	updateFn         func(ctx context.Context, d *Department) error
	deleteFn         func(ctx context.Context, id string) error
	getUserRoleFn    func(ctx context.Context, userID uuid.UUID) (string, error)
	countEmployeesFn func(ctx context.Context, departmentID string) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                   { return f }
func (f *fakeRepo) Create(ctx context.Context, d *Department) error { return f.createFn(ctx, d) }
func (f *fakeRepo) FindAll(ctx context.Context) ([]Department, error) {
	return f.findAllFn(ctx)
}
func (f *fakeRepo) FindByID(ctx context.Context, id string) (*Department, error) {
	return f.findByIDFn(ctx, id)
}
func (f *fakeRepo) Update(ctx context.Context, d *Department) error { return f.updateFn(ctx, d) }
func (f *fakeRepo) Delete(ctx context.Context, id string) error     { return f.deleteFn(ctx, id) }
func (f *fakeRepo) GetUserRole(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.getUserRoleFn(ctx, userID)
}
func (f *fakeRepo) CountEmployees(ctx context.Context, departmentID string) (int64, error) {
	return f.countEmployeesFn(ctx, departmentID)
}

func TestCreate_RejectsNonManagerAssignee(t *testing.T) {
	managerID := uuid.New().String()

	repo := &fakeRepo{
		getUserRoleFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			return "EMPLOYEE", nil
		},
	}

	_, err := NewService(repo).Create(context.Background(), CreateDepartmentRequest{
		Name:      "Engineering",
		ManagerID: &managerID,
	})
	assert.ErrorIs(t, err, departmenterrors.ErrManagerRoleRequired)
}

func TestCreate_AssignsManager(t *testing.T) {
	managerID := uuid.New()
	managerIDStr := managerID.String()

	var saved *Department
	repo := &fakeRepo{
		getUserRoleFn: func(ctx context.Context, userID uuid.UUID) (string, error) {
			assert.Equal(t, managerID, userID)
			return "MANAGER", nil
		},
		createFn: func(ctx context.Context, d *Department) error {
			saved = d
			return nil
		},
	}

	resp, err := NewService(repo).Create(context.Background(), CreateDepartmentRequest{
		Name:      "Engineering",
		ManagerID: &managerIDStr,
	})
	assert.NoError(t, err)
	assert.NotNil(t, saved.ManagerID)
	assert.Equal(t, managerID, *saved.ManagerID)
	assert.Equal(t, managerIDStr, *resp.ManagerID)
}

func TestDelete_NonEmptyDepartmentConflicts(t *testing.T) {
	id := uuid.New().String()
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, deptID string) (*Department, error) {
			return &Department{ID: uuid.MustParse(id), Name: "Ops"}, nil
		},
		countEmployeesFn: func(ctx context.Context, departmentID string) (int64, error) {
			return 3, nil
		},
	}

	err := NewService(repo).Delete(context.Background(), id)
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotEmpty)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id string) (*Department, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	_, err := NewService(repo).GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
}
