package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hris-backend/internal/events"
	notificationerrors "hris-backend/internal/notification/errors"
)

type Service interface {
	ListOwn(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error

	// Consumer-side entry points; both are idempotent per event id.
	RecordLeaveSubmitted(ctx context.Context, evt events.LeaveSubmittedEvent) error
	RecordLeaveReviewed(ctx context.Context, evt events.LeaveReviewedEvent) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) ListOwn(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, notificationerrors.ErrInvalidNotificationID
	}

	rows, err := s.repo.FindByUser(ctx, uid, unreadOnly)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp, nil
}

func (s *service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, notificationerrors.ErrInvalidNotificationID
	}
	return s.repo.CountUnread(ctx, uid)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	if n.UserID.String() != userID {
		return notificationerrors.ErrNotNotificationOwner
	}

	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	return s.repo.MarkAllRead(ctx, uid)
}

// RecordLeaveSubmitted notifies the requester's department manager. Subjects
// without a managed department produce nothing.
func (s *service) RecordLeaveSubmitted(ctx context.Context, evt events.LeaveSubmittedEvent) error {
	if evt.ManagerUserID == "" {
		s.logger.Debug("leave submitted without department manager, skipping",
			zap.String("leave_id", evt.LeaveID.String()))
		return nil
	}

	managerID, err := uuid.Parse(evt.ManagerUserID)
	if err != nil {
		s.logger.Error("leave submitted event carries invalid manager id",
			zap.String("manager_user_id", evt.ManagerUserID))
		return nil
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  managerID,
		EventID: evt.EventID,
		Type:    events.TypeLeaveSubmitted,
		Message: fmt.Sprintf("%s submitted a leave request for %s to %s",
			evt.RequesterName,
			evt.StartDate.Format("2006-01-02"),
			evt.EndDate.Format("2006-01-02"),
		),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("leave submitted notification recorded",
		zap.String("leave_id", evt.LeaveID.String()),
		zap.String("manager_user_id", evt.ManagerUserID),
	)
	return nil
}

func (s *service) RecordLeaveReviewed(ctx context.Context, evt events.LeaveReviewedEvent) error {
	message := fmt.Sprintf("Your leave request was %s", strings.ToLower(evt.Status))
	if evt.ReviewerNote != "" {
		message = message + ": " + evt.ReviewerNote
	}

	n := &Notification{
		ID:      uuid.New(),
		UserID:  evt.RequesterUserID,
		EventID: evt.EventID,
		Type:    events.TypeLeaveReviewed,
		Message: message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.logger.Info("leave reviewed notification recorded",
		zap.String("leave_id", evt.LeaveID.String()),
		zap.String("requester_user_id", evt.RequesterUserID.String()),
		zap.String("status", evt.Status),
	)
	return nil
}
