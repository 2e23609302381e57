package attendance

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	attendanceerrors "hris-backend/internal/attendance/errors"
	"hris-backend/internal/domain"
	"hris-backend/internal/identity"
	"hris-backend/internal/shared/apperror"
)

type Service interface {
	CheckIn(ctx context.Context, actorID string) (AttendanceResponse, error)
	CheckOut(ctx context.Context, actorID string) (AttendanceResponse, error)
	GetSelf(ctx context.Context, actorID, period string) ([]AttendanceResponse, error)
	List(ctx context.Context, actorID string, q ListAttendanceQuery) ([]AttendanceListItem, error)
}

type service struct {
	repo     Repository
	resolver identity.Resolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, resolver identity.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{repo: repo, resolver: resolver, logger: l, now: time.Now}
}

func (s *service) CheckIn(ctx context.Context, actorID string) (AttendanceResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return AttendanceResponse{}, apperror.ErrProfileNotAvailable
	}

	now := s.now()
	a := &Attendance{
		ID:         uuid.New(),
		EmployeeID: subjectID,
		Date:       dateOf(now),
		CheckIn:    &now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if isDuplicateDay(err) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("check-in failed", zap.String("subject_id", subjectID.String()), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked in",
		zap.String("subject_id", subjectID.String()),
		zap.String("date", a.Date.Format("2006-01-02")),
	)
	return mapToResponse(*a), nil
}

func (s *service) CheckOut(ctx context.Context, actorID string) (AttendanceResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return AttendanceResponse{}, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return AttendanceResponse{}, apperror.ErrProfileNotAvailable
	}

	now := s.now()
	a, err := s.repo.FindByEmployeeAndDate(ctx, subjectID, dateOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if a.CheckIn == nil {
		return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
	}
	if a.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	a.CheckOut = &now
	a.WorkHour = computeWorkHour(*a.CheckIn, now)

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("check-out failed", zap.String("subject_id", subjectID.String()), zap.Error(err))
		return AttendanceResponse{}, err
	}

	s.logger.Info("checked out",
		zap.String("subject_id", subjectID.String()),
		zap.Float64("work_hour", a.WorkHour),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetSelf(ctx context.Context, actorID, period string) ([]AttendanceResponse, error) {
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
		start, err := time.Parse("2006-01", period)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidPeriodFilter
		}
		end := start.AddDate(0, 1, -1)
		monthStart, monthEnd = &start, &end
	}

	rows, err := s.repo.FindByEmployee(ctx, subjectID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	resp := make([]AttendanceResponse, len(rows))
	for i, a := range rows {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) List(ctx context.Context, actorID string, q ListAttendanceQuery) ([]AttendanceListItem, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}

	filter := ListFilter{
		DepartmentID: q.DepartmentID,
		Search:       q.Search,
		SortBy:       q.SortBy,
		SortDir:      q.SortDir,
	}

	if actor.Role == domain.RoleManager {
		if len(actor.ManagedDepartments) == 0 {
			return []AttendanceListItem{}, nil
		}
		filter.ScopeDepartmentIDs = actor.ManagedDepartments
	}

	if q.Date != "" {
		date, err := time.Parse("2006-01-02", q.Date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDate
		}
		filter.Date = &date
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]AttendanceListItem, len(rows))
	for i, row := range rows {
		items[i] = mapToListItem(row)
	}
	return items, nil
}

// computeWorkHour is elapsed wall-clock time in hours, two decimals. No
// break time is deducted.
func computeWorkHour(checkIn, checkOut time.Time) float64 {
	minutes := checkOut.Sub(checkIn).Minutes()
	return math.Round(minutes/60*100) / 100
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isDuplicateDay(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format("2006-01-02"),
		WorkHour:   a.WorkHour,
	}
	if a.CheckIn != nil {
		v := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}

func mapToListItem(row AttendanceRow) AttendanceListItem {
	item := AttendanceListItem{
		ID:             row.ID.String(),
		EmployeeName:   row.EmployeeName,
		EmployeeCode:   row.EmployeeCode,
		DepartmentName: row.DepartmentName,
		Date:           row.Date.Format("2006-01-02"),
		WorkHour:       row.WorkHour,
	}
	if row.CheckIn != nil {
		v := row.CheckIn.Format(time.RFC3339)
		item.CheckIn = &v
	}
	if row.CheckOut != nil {
		v := row.CheckOut.Format(time.RFC3339)
		item.CheckOut = &v
	}
	return item
}
