package auth

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "hris-backend/internal/auth/errors"
)

type fakeRepo struct {
	getByEmailFn   func(ctx context.Context, email string) (*User, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*User, error)
	getEmployeeFn  func(ctx context.Context, userID uuid.UUID) (string, error)
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	return f.getByEmailFn(ctx, email)
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeRepo) GetEmployeeIDByUserID(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.getEmployeeFn(ctx, userID)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestLogin_Success(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	userID := uuid.New()
	employeeID := uuid.New().String()

	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{
				ID:       userID,
				Name:     "Budi Santoso",
				Email:    email,
				Password: hashed(t, "secret123"),
				Role:     "EMPLOYEE",
				IsActive: true,
			}, nil
		},
		getEmployeeFn: func(ctx context.Context, uid uuid.UUID) (string, error) {
			return employeeID, nil
		},
	}

	pair, err := NewService(repo).Login(context.Background(), "budi@example.com", "secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, employeeID, pair.User.EmployeeID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: uuid.New(), Password: hashed(t, "right"), IsActive: true}, nil
		},
	}

	_, err := NewService(repo).Login(context.Background(), "budi@example.com", "wrong")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	_, err := NewService(repo).Login(context.Background(), "nobody@example.com", "x")
	assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
}

func TestLogin_InactiveAccount(t *testing.T) {
	repo := &fakeRepo{
		getByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return &User{ID: uuid.New(), Password: hashed(t, "secret123"), IsActive: false}, nil
		},
	}

	_, err := NewService(repo).Login(context.Background(), "budi@example.com", "secret123")
	assert.ErrorIs(t, err, autherrors.ErrAccountInactive)
}
