package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "hris-backend/internal/auth/errors"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Service interface {
	Login(ctx context.Context, email, password string) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("login rejected for inactive account", zap.String("user_id", user.ID.String()))
		return TokenPairResponse{}, autherrors.ErrAccountInactive
	}

	employeeID, err := s.repo.GetEmployeeIDByUserID(ctx, user.ID)
	if err != nil {
		return TokenPairResponse{}, err
	}

	pair, err := s.buildTokenPair(user, employeeID)
	if err != nil {
		return TokenPairResponse{}, err
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return pair, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}
	if !user.IsActive {
		return TokenPairResponse{}, autherrors.ErrAccountInactive
	}

	employeeID, err := s.repo.GetEmployeeIDByUserID(ctx, user.ID)
	if err != nil {
		return TokenPairResponse{}, err
	}

	return s.buildTokenPair(user, employeeID)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	employeeID, err := s.repo.GetEmployeeIDByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:         u.ID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		EmployeeID: employeeID,
	}, nil
}

func (s *service) buildTokenPair(user *User, employeeID string) (TokenPairResponse, error) {
	accessToken, err := generateToken(user, employeeID, accessTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := generateToken(user, employeeID, refreshTokenTTL)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: AuthResponse{
			ID:         user.ID.String(),
			Name:       user.Name,
			Email:      user.Email,
			Role:       user.Role,
			EmployeeID: employeeID,
		},
	}, nil
}

func generateToken(user *User, employeeID string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"role":        user.Role,
		"employee_id": employeeID,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
