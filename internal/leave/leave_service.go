package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hris-backend/internal/authz"
	"hris-backend/internal/domain"
	"hris-backend/internal/events"
	"hris-backend/internal/identity"
	leaveerrors "hris-backend/internal/leave/errors"
	"hris-backend/internal/messaging/kafka"
	"hris-backend/internal/shared/apperror"
	"hris-backend/internal/shared/contextutil"
	"hris-backend/internal/storage"
)

const maxPhotoSize = 2 << 20

type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitLeaveRequest, photo *PhotoUpload) (LeaveResponse, error)
	GetSelf(ctx context.Context, actorID, status, period string) ([]LeaveResponse, error)
	UpdateSelf(ctx context.Context, actorID, id string, req UpdateLeaveRequest, photo *PhotoUpload) (LeaveResponse, error)
	DeleteSelf(ctx context.Context, actorID, id string) error
	Review(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, actorID string, q ListLeaveQuery) ([]LeaveListItem, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	resolver identity.Resolver
	files    storage.FileStore
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	resolver identity.Resolver,
	files storage.FileStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, resolver: resolver, files: files, logger: l}
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitLeaveRequest, photo *PhotoUpload) (LeaveResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return LeaveResponse{}, apperror.ErrProfileNotAvailable
	}

	startDate, endDate, err := parseLeaveDates(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	var photoName *string
	if photo != nil {
		name, err := s.storePhoto(ctx, photo)
		if err != nil {
			return LeaveResponse{}, err
		}
		photoName = &name
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: subjectID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		Status:     StatusPending,
		Photo:      photoName,
	}

	if err := s.submitTx(ctx, actor, l); err != nil {
		if photoName != nil {
			_ = s.files.Delete(ctx, *photoName)
		}
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_id", l.ID.String()),
		zap.String("subject_id", subjectID.String()),
	)
	return mapToResponse(*l), nil
}

// submitTx persists the request and its submitted event in one transaction
// so the notification pipeline can never observe a request that was rolled
// back.
func (s *service) submitTx(ctx context.Context, actor domain.Actor, l *LeaveRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave request failed", zap.Error(err))
		return err
	}

	name, managerUserID, err := qtx.SubmitterContext(ctx, l.EmployeeID)
	if err != nil {
		return err
	}

	evt := events.LeaveSubmittedEvent{
		EventID:       uuid.New(),
		LeaveID:       l.ID,
		RequesterID:   actor.UserID,
		RequesterName: name,
		ManagerUserID: managerUserID,
		StartDate:     l.StartDate,
		EndDate:       l.EndDate,
		SubmittedAt:   time.Now().UTC(),
	}
	outboxEvt, err := kafka.NewOutboxEvent(
		events.LeaveLifecycleTopic,
		events.TypeLeaveSubmitted,
		"leave_request",
		l.ID,
		contextutil.GetRequestID(ctx),
		evt,
	)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvt); err != nil {
		s.logger.Error("enqueue leave submitted event failed", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (s *service) GetSelf(ctx context.Context, actorID, status, period string) ([]LeaveResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return nil, apperror.ErrProfileNotAvailable
	}

	var monthStart, monthEnd *time.Time
	if period != "" {
		start, end, err := parsePeriodMonth(period)
		if err != nil {
			return nil, err
		}
		monthStart, monthEnd = &start, &end
	}

	leaves, err := s.repo.FindByEmployee(ctx, subjectID, status, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) UpdateSelf(ctx context.Context, actorID, id string, req UpdateLeaveRequest, photo *PhotoUpload) (LeaveResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return LeaveResponse{}, apperror.ErrProfileNotAvailable
	}

	l, err := s.findOwnPending(ctx, subjectID, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	startDate, endDate, err := parseLeaveDates(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	if photo != nil {
		// The previous attachment goes first so a replaced file never
		// lingers on disk.
		if l.Photo != nil {
			if err := s.files.Delete(ctx, *l.Photo); err != nil {
				s.logger.Warn("delete replaced leave photo failed",
					zap.String("leave_id", id), zap.Error(err))
			}
		}
		name, err := s.storePhoto(ctx, photo)
		if err != nil {
			return LeaveResponse{}, err
		}
		l.Photo = &name
	}

	l.StartDate = startDate
	l.EndDate = endDate
	l.Reason = req.Reason

	if err := s.repo.Update(ctx, l); err != nil {
		s.logger.Error("update leave request failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request updated", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) DeleteSelf(ctx context.Context, actorID, id string) error {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return apperror.ErrProfileNotAvailable
	}

	l, err := s.findOwnPending(ctx, subjectID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave request failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	if l.Photo != nil {
		_ = s.files.Delete(ctx, *l.Photo)
	}

	s.logger.Info("leave request deleted", zap.String("leave_id", id))
	return nil
}

func (s *service) Review(ctx context.Context, actorID, id string, req ReviewLeaveRequest) (LeaveResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapLeaveNotFound(err)
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	subject, err := s.resolver.ResolveSubject(ctx, l.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}

	decision := authz.CanReviewLeave(actor, subject)
	if !decision.Allowed {
		s.logger.Warn("leave review denied",
			zap.String("leave_id", id),
			zap.String("actor_id", actor.UserID.String()),
			zap.String("reason", string(decision.Reason)),
		)
		return LeaveResponse{}, leaveerrors.ErrReviewNotAllowed
	}

	note := req.Note
	if note == "" {
		if req.Status == StatusApproved {
			note = "Leave request approved"
		} else {
			note = "Leave request rejected"
		}
	}

	now := time.Now().UTC()
	reviewer := actor.UserID
	l.Status = req.Status
	l.ReviewedBy = &reviewer
	l.ReviewedAt = &now
	l.ReviewerNote = &note

	if err := s.reviewTx(ctx, l, subject); err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("leave request reviewed",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("reviewer_id", reviewer.String()),
	)
	return mapToResponse(*l), nil
}

func (s *service) reviewTx(ctx context.Context, l *LeaveRequest, subject domain.Subject) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Update(ctx, l); err != nil {
		s.logger.Error("persist leave review failed", zap.Error(err))
		return err
	}

	evt := events.LeaveReviewedEvent{
		EventID:         uuid.New(),
		LeaveID:         l.ID,
		RequesterUserID: subject.UserID,
		Status:          l.Status,
		ReviewedAt:      *l.ReviewedAt,
	}
	if l.ReviewerNote != nil {
		evt.ReviewerNote = *l.ReviewerNote
	}
	outboxEvt, err := kafka.NewOutboxEvent(
		events.LeaveLifecycleTopic,
		events.TypeLeaveReviewed,
		"leave_request",
		l.ID,
		contextutil.GetRequestID(ctx),
		evt,
	)
	if err != nil {
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvt); err != nil {
		s.logger.Error("enqueue leave reviewed event failed", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (s *service) List(ctx context.Context, actorID string, q ListLeaveQuery) ([]LeaveListItem, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	filter := ListFilter{
		Status:       q.Status,
		DepartmentID: q.DepartmentID,
		Search:       q.Search,
		MinDays:      q.MinDays,
		MaxDays:      q.MaxDays,
		SortBy:       q.SortBy,
		SortDir:      q.SortDir,
	}

	if actor.Role == domain.RoleManager {
		if len(actor.ManagedDepartments) == 0 {
			return []LeaveListItem{}, nil
		}
		filter.ScopeDepartmentIDs = actor.ManagedDepartments
	}

	if q.StartDate != "" {
		from, err := time.Parse("2006-01-02", q.StartDate)
		if err != nil {
			return nil, leaveerrors.ErrInvalidDate
		}
		filter.StartFrom = &from
	}
	if q.EndDate != "" {
		to, err := time.Parse("2006-01-02", q.EndDate)
		if err != nil {
			return nil, leaveerrors.ErrInvalidDate
		}
		filter.StartTo = &to
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]LeaveListItem, len(rows))
	for i, row := range rows {
		items[i] = mapToListItem(row)
	}
	return items, nil
}

// findOwnPending loads a request and enforces the self-service rules: the
// caller must own it and it must still be waiting for review.
func (s *service) findOwnPending(ctx context.Context, subjectID uuid.UUID, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLeaveNotFound(err)
	}
	if l.EmployeeID != subjectID {
		return nil, leaveerrors.ErrNotRequestOwner
	}
	if l.Status != StatusPending {
		return nil, leaveerrors.ErrAlreadyReviewed
	}
	return l, nil
}

func (s *service) storePhoto(ctx context.Context, photo *PhotoUpload) (string, error) {
	switch photo.Ext {
	case "jpg", "jpeg", "png":
	default:
		return "", leaveerrors.ErrInvalidPhoto
	}
	if len(photo.Data) == 0 || len(photo.Data) > maxPhotoSize {
		return "", leaveerrors.ErrInvalidPhoto
	}

	name, err := s.files.Store(ctx, photo.Data, photo.Ext)
	if err != nil {
		s.logger.Error("store leave photo failed", zap.Error(err))
		return "", err
	}
	return name, nil
}

func parseLeaveDates(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDate
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDate
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrEndBeforeStart
	}
	return startDate, endDate, nil
}

// parsePeriodMonth expands "YYYY-MM" into the first and last day of that
// month.
func parsePeriodMonth(period string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidPeriodFilter
	}
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

func mapLeaveNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		DurationDays: l.DurationDays(),
		Reason:       l.Reason,
		Status:       l.Status,
		ReviewerNote: l.ReviewerNote,
		Photo:        l.Photo,
	}
	if l.ReviewedBy != nil {
		id := l.ReviewedBy.String()
		resp.ReviewedBy = &id
	}
	if l.ReviewedAt != nil {
		at := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &at
	}
	return resp
}

func mapToListItem(row LeaveRow) LeaveListItem {
	days := int(row.EndDate.Sub(row.StartDate).Hours()/24) + 1
	return LeaveListItem{
		ID:             row.ID.String(),
		RequesterName:  row.RequesterName,
		RequesterEmail: row.RequesterEmail,
		EmployeeCode:   row.EmployeeCode,
		Position:       row.Position,
		DepartmentName: row.DepartmentName,
		StartDate:      row.StartDate.Format("2006-01-02"),
		EndDate:        row.EndDate.Format("2006-01-02"),
		DurationDays:   days,
		Reason:         row.Reason,
		Status:         row.Status,
	}
}
