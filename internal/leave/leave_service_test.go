package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hris-backend/internal/domain"
	leaveerrors "hris-backend/internal/leave/errors"
	"hris-backend/internal/messaging/kafka"
	"hris-backend/internal/shared/apperror"
)

type fakeRepo struct {
	leaves  map[uuid.UUID]*LeaveRequest
	created []*LeaveRequest
	deleted []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leaves: map[uuid.UUID]*LeaveRequest{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, l *LeaveRequest) error {
	cp := *l
	f.leaves[l.ID] = &cp
	f.created = append(f.created, &cp)
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	l, ok := f.leaves[uuid.MustParse(id)]
	if !ok {
		return nil, leaveerrors.ErrLeaveNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, l *LeaveRequest) error {
	cp := *l
	f.leaves[l.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.leaves, uuid.MustParse(id))
	f.deleted = append(f.deleted, id)
	return nil
}

// FindByEmployee mirrors the production overlap semantics so the
// month-boundary behavior is pinned down here.
func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID uuid.UUID, status string, monthStart, monthEnd *time.Time) ([]LeaveRequest, error) {
	var out []LeaveRequest
	for _, l := range f.leaves {
		if l.EmployeeID != employeeID {
			continue
		}
		if status != "" && l.Status != status {
			continue
		}
		if monthStart != nil && monthEnd != nil {
			if l.StartDate.After(*monthEnd) || l.EndDate.Before(*monthStart) {
				continue
			}
		}
		out = append(out, *l)
	}
	return out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]LeaveRow, error) {
	return nil, nil
}

func (f *fakeRepo) SubmitterContext(ctx context.Context, subjectID uuid.UUID) (string, string, error) {
	return "Siti Rahayu", uuid.NewString(), nil
}

type fakeOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error               { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

type fakeResolver struct {
	actors   map[string]domain.Actor
	subjects map[uuid.UUID]domain.Subject
}

func (f *fakeResolver) Resolve(ctx context.Context, userID string) (domain.Actor, error) {
	actor, ok := f.actors[userID]
	if !ok {
		return domain.Actor{}, apperror.ErrUnauthorized
	}
	return actor, nil
}

func (f *fakeResolver) ResolveSubject(ctx context.Context, subjectID uuid.UUID) (domain.Subject, error) {
	subject, ok := f.subjects[subjectID]
	if !ok {
		return domain.Subject{}, apperror.ErrNotFound
	}
	return subject, nil
}

type fakeFileStore struct {
	stored  []string
	deleted []string
}

func (f *fakeFileStore) Store(ctx context.Context, data []byte, ext string) (string, error) {
	name := uuid.NewString() + "." + ext
	f.stored = append(f.stored, name)
	return name, nil
}

func (f *fakeFileStore) Delete(ctx context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return nil
}

type leaveFixture struct {
	service  Service
	repo     *fakeRepo
	outbox   *fakeOutbox
	resolver *fakeResolver
	files    *fakeFileStore
	mock     sqlmock.Sqlmock
	db       *sql.DB
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := newFakeRepo()
	outbox := &fakeOutbox{}
	resolver := &fakeResolver{
		actors:   map[string]domain.Actor{},
		subjects: map[uuid.UUID]domain.Subject{},
	}
	files := &fakeFileStore{}

	return &leaveFixture{
		service:  NewService(db, repo, outbox, resolver, files),
		repo:     repo,
		outbox:   outbox,
		resolver: resolver,
		files:    files,
		mock:     mock,
		db:       db,
	}
}

func employeeActor(f *leaveFixture) (domain.Actor, uuid.UUID) {
	userID := uuid.New()
	employeeID := uuid.New()
	actor := domain.Actor{UserID: userID, Role: domain.RoleEmployee, EmployeeID: &employeeID}
	f.resolver.actors[userID.String()] = actor
	return actor, employeeID
}

func TestSubmit_ForcesPendingAndEnqueuesEvent(t *testing.T) {
	f := newLeaveFixture(t)
	actor, employeeID := employeeActor(f)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.service.Submit(context.Background(), actor.UserID.String(), SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "family matters",
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)
	assert.Equal(t, employeeID.String(), resp.EmployeeID)
	assert.Equal(t, 3, resp.DurationDays)

	assert.Len(t, f.outbox.events, 1)
	assert.Equal(t, "leave.submitted", f.outbox.events[0].EventType)
	assert.Equal(t, kafka.OutboxStatusPending, f.outbox.events[0].Status)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestSubmit_WithoutProfileIsPreconditionFailure(t *testing.T) {
	f := newLeaveFixture(t)
	userID := uuid.New()
	f.resolver.actors[userID.String()] = domain.Actor{UserID: userID, Role: domain.RoleEmployee}

	_, err := f.service.Submit(context.Background(), userID.String(), SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "family matters",
	}, nil)

	assert.ErrorIs(t, err, apperror.ErrProfileNotAvailable)
}

func TestSubmit_AdminWithoutProfileAliasesOwnUserID(t *testing.T) {
	f := newLeaveFixture(t)
	adminID := uuid.New()
	f.resolver.actors[adminID.String()] = domain.Actor{UserID: adminID, Role: domain.RoleAdminHR}

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.service.Submit(context.Background(), adminID.String(), SubmitLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-02",
		Reason:    "medical checkup",
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, adminID.String(), resp.EmployeeID)
}

func TestSubmit_EndBeforeStartRejected(t *testing.T) {
	f := newLeaveFixture(t)
	actor, _ := employeeActor(f)

	_, err := f.service.Submit(context.Background(), actor.UserID.String(), SubmitLeaveRequest{
		StartDate: "2026-03-04",
		EndDate:   "2026-03-02",
		Reason:    "typo",
	}, nil)

	assert.ErrorIs(t, err, leaveerrors.ErrEndBeforeStart)
}

func TestUpdateSelf_ReviewedRequestIsImmutable(t *testing.T) {
	f := newLeaveFixture(t)
	actor, employeeID := employeeActor(f)

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-04"),
		Status:     StatusApproved,
	}
	f.repo.leaves[l.ID] = l

	_, err := f.service.UpdateSelf(context.Background(), actor.UserID.String(), l.ID.String(), UpdateLeaveRequest{
		StartDate: "2026-03-03",
		EndDate:   "2026-03-05",
		Reason:    "moved dates",
	}, nil)

	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyReviewed)
}

func TestUpdateSelf_OtherEmployeesRequestForbidden(t *testing.T) {
	f := newLeaveFixture(t)
	actor, _ := employeeActor(f)

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: uuid.New(),
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-04"),
		Status:     StatusPending,
	}
	f.repo.leaves[l.ID] = l

	_, err := f.service.UpdateSelf(context.Background(), actor.UserID.String(), l.ID.String(), UpdateLeaveRequest{
		StartDate: "2026-03-03",
		EndDate:   "2026-03-05",
		Reason:    "not mine",
	}, nil)

	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestOwner)
}

func TestUpdateSelf_PhotoReplaceDeletesPreviousFile(t *testing.T) {
	f := newLeaveFixture(t)
	actor, employeeID := employeeActor(f)

	oldPhoto := "old-photo.jpg"
	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-04"),
		Status:     StatusPending,
		Photo:      &oldPhoto,
	}
	f.repo.leaves[l.ID] = l

	resp, err := f.service.UpdateSelf(context.Background(), actor.UserID.String(), l.ID.String(), UpdateLeaveRequest{
		StartDate: "2026-03-02",
		EndDate:   "2026-03-04",
		Reason:    "new attachment",
	}, &PhotoUpload{Data: []byte("img"), Ext: "png"})

	assert.NoError(t, err)
	assert.Equal(t, []string{oldPhoto}, f.files.deleted)
	assert.Len(t, f.files.stored, 1)
	assert.Equal(t, f.files.stored[0], *resp.Photo)
}

func TestReview_ManagerOutsideDepartmentDenied(t *testing.T) {
	f := newLeaveFixture(t)

	managerID := uuid.New()
	f.resolver.actors[managerID.String()] = domain.Actor{
		UserID:             managerID,
		Role:               domain.RoleManager,
		ManagedDepartments: []uuid.UUID{uuid.New()},
	}

	employeeID := uuid.New()
	f.resolver.subjects[employeeID] = domain.Subject{
		UserID:       uuid.New(),
		Role:         domain.RoleEmployee,
		DepartmentID: uuid.New(),
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-04"),
		Status:     StatusPending,
	}
	f.repo.leaves[l.ID] = l

	_, err := f.service.Review(context.Background(), managerID.String(), l.ID.String(), ReviewLeaveRequest{
		Status: StatusApproved,
	})

	assert.ErrorIs(t, err, leaveerrors.ErrReviewNotAllowed)
}

func TestReview_ApprovesWithDefaultNoteAndEvent(t *testing.T) {
	f := newLeaveFixture(t)

	deptID := uuid.New()
	managerID := uuid.New()
	f.resolver.actors[managerID.String()] = domain.Actor{
		UserID:             managerID,
		Role:               domain.RoleManager,
		ManagedDepartments: []uuid.UUID{deptID},
	}

	employeeID := uuid.New()
	requesterUserID := uuid.New()
	f.resolver.subjects[employeeID] = domain.Subject{
		UserID:       requesterUserID,
		Role:         domain.RoleEmployee,
		DepartmentID: deptID,
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-04"),
		Status:     StatusPending,
	}
	f.repo.leaves[l.ID] = l

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	resp, err := f.service.Review(context.Background(), managerID.String(), l.ID.String(), ReviewLeaveRequest{
		Status: StatusApproved,
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, managerID.String(), *resp.ReviewedBy)
	assert.Equal(t, "Leave request approved", *resp.ReviewerNote)

	assert.Len(t, f.outbox.events, 1)
	assert.Equal(t, "leave.reviewed", f.outbox.events[0].EventType)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReview_AlreadyReviewedConflicts(t *testing.T) {
	f := newLeaveFixture(t)

	adminID := uuid.New()
	f.resolver.actors[adminID.String()] = domain.Actor{UserID: adminID, Role: domain.RoleAdminHR}

	employeeID := uuid.New()
	f.resolver.subjects[employeeID] = domain.Subject{
		UserID: uuid.New(),
		Role:   domain.RoleEmployee,
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  mustDate("2026-03-02"),
		EndDate:    mustDate("2026-03-04"),
		Status:     StatusRejected,
	}
	f.repo.leaves[l.ID] = l

	_, err := f.service.Review(context.Background(), adminID.String(), l.ID.String(), ReviewLeaveRequest{
		Status: StatusApproved,
	})

	assert.ErrorIs(t, err, leaveerrors.ErrAlreadyReviewed)
}

// A request spanning the year boundary must show up under both the December
// and the January period filter.
func TestGetSelf_PeriodFilterMatchesByOverlap(t *testing.T) {
	f := newLeaveFixture(t)
	actor, employeeID := employeeActor(f)

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  mustDate("2025-12-28"),
		EndDate:    mustDate("2026-01-05"),
		Status:     StatusPending,
	}
	f.repo.leaves[l.ID] = l

	december, err := f.service.GetSelf(context.Background(), actor.UserID.String(), "", "2025-12")
	assert.NoError(t, err)
	assert.Len(t, december, 1)

	january, err := f.service.GetSelf(context.Background(), actor.UserID.String(), "", "2026-01")
	assert.NoError(t, err)
	assert.Len(t, january, 1)

	february, err := f.service.GetSelf(context.Background(), actor.UserID.String(), "", "2026-02")
	assert.NoError(t, err)
	assert.Len(t, february, 0)
}

func TestList_ManagerWithoutDepartmentsSeesNothing(t *testing.T) {
	f := newLeaveFixture(t)

	managerID := uuid.New()
	f.resolver.actors[managerID.String()] = domain.Actor{UserID: managerID, Role: domain.RoleManager}

	items, err := f.service.List(context.Background(), managerID.String(), ListLeaveQuery{})
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func mustDate(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}
