package review

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"hris-backend/internal/domain"
	reviewerrors "hris-backend/internal/review/errors"
	"hris-backend/internal/shared/apperror"
)

type fakeRepo struct {
	reviews map[uuid.UUID]*PerformanceReview
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reviews: map[uuid.UUID]*PerformanceReview{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, pr *PerformanceReview) error {
	cp := *pr
	f.reviews[pr.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*PerformanceReview, error) {
	pr, ok := f.reviews[uuid.MustParse(id)]
	if !ok {
		return nil, reviewerrors.ErrReviewNotFound
	}
	cp := *pr
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, pr *PerformanceReview) error {
	cp := *pr
	f.reviews[pr.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.reviews, uuid.MustParse(id))
	return nil
}

func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID uuid.UUID, period string) ([]PerformanceReview, error) {
	var out []PerformanceReview
	for _, pr := range f.reviews {
		if pr.EmployeeID == employeeID {
			out = append(out, *pr)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindRecent(ctx context.Context, employeeID uuid.UUID, n int) ([]PerformanceReview, error) {
	return f.FindByEmployee(ctx, employeeID, "")
}

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

type reviewFixture struct {
	service  Service
	repo     *fakeRepo
	resolver *fakeResolver
}

func newReviewFixture() *reviewFixture {
	repo := newFakeRepo()
	resolver := &fakeResolver{
		actors:   map[string]domain.Actor{},
		subjects: map[uuid.UUID]domain.Subject{},
	}
	return &reviewFixture{
		service:  NewService(repo, resolver),
		repo:     repo,
		resolver: resolver,
	}
}

func (f *reviewFixture) addManager(depts ...uuid.UUID) domain.Actor {
	actor := domain.Actor{
		UserID:             uuid.New(),
		Role:               domain.RoleManager,
		ManagedDepartments: depts,
	}
	f.resolver.actors[actor.UserID.String()] = actor
	return actor
}

func (f *reviewFixture) addEmployeeSubject(deptID uuid.UUID) uuid.UUID {
	subjectID := uuid.New()
	f.resolver.subjects[subjectID] = domain.Subject{
		UserID:       uuid.New(),
		Role:         domain.RoleEmployee,
		DepartmentID: deptID,
	}
	return subjectID
}

func TestCreate_ManagerReviewsOwnDepartment(t *testing.T) {
	f := newReviewFixture()
	deptID := uuid.New()
	manager := f.addManager(deptID)
	subjectID := f.addEmployeeSubject(deptID)

	resp, err := f.service.Create(context.Background(), manager.UserID.String(), CreateReviewRequest{
		EmployeeID: subjectID.String(),
		Period:     "2026-02",
		Rating:     8,
		Review:     "solid quarter",
	})

	assert.NoError(t, err)
	assert.Equal(t, manager.UserID.String(), resp.ReviewerID)
	assert.Equal(t, 8, resp.Rating)
}

func TestCreate_ManagerOutsideDepartmentDenied(t *testing.T) {
	f := newReviewFixture()
	manager := f.addManager(uuid.New())
	subjectID := f.addEmployeeSubject(uuid.New())

	_, err := f.service.Create(context.Background(), manager.UserID.String(), CreateReviewRequest{
		EmployeeID: subjectID.String(),
		Period:     "2026-02",
		Rating:     8,
	})

	assert.ErrorIs(t, err, reviewerrors.ErrReviewNotAllowed)
}

func TestCreate_AdminCannotReviewSelf(t *testing.T) {
	f := newReviewFixture()
	adminID := uuid.New()
	f.resolver.actors[adminID.String()] = domain.Actor{UserID: adminID, Role: domain.RoleAdminHR}
	// Aliased subject: the admin files under its own user id.
	f.resolver.subjects[adminID] = domain.Subject{UserID: adminID, Role: domain.RoleAdminHR}

	_, err := f.service.Create(context.Background(), adminID.String(), CreateReviewRequest{
		EmployeeID: adminID.String(),
		Period:     "2026-02",
		Rating:     10,
	})

	assert.ErrorIs(t, err, reviewerrors.ErrReviewNotAllowed)
}

func TestCreate_AdminPeerReviewOnlyByManager(t *testing.T) {
	f := newReviewFixture()

	actingAdmin := uuid.New()
	f.resolver.actors[actingAdmin.String()] = domain.Actor{UserID: actingAdmin, Role: domain.RoleAdminHR}

	otherAdmin := uuid.New()
	f.resolver.subjects[otherAdmin] = domain.Subject{UserID: otherAdmin, Role: domain.RoleAdminHR}

	_, err := f.service.Create(context.Background(), actingAdmin.String(), CreateReviewRequest{
		EmployeeID: otherAdmin.String(),
		Period:     "2026-02",
		Rating:     9,
	})
	assert.ErrorIs(t, err, reviewerrors.ErrReviewNotAllowed)

	manager := f.addManager()
	resp, err := f.service.Create(context.Background(), manager.UserID.String(), CreateReviewRequest{
		EmployeeID: otherAdmin.String(),
		Period:     "2026-02",
		Rating:     9,
	})
	assert.NoError(t, err)
	assert.Equal(t, otherAdmin.String(), resp.EmployeeID)
}

func TestUpdate_ManagerMustBeAuthor(t *testing.T) {
	f := newReviewFixture()
	deptID := uuid.New()
	author := f.addManager(deptID)
	other := f.addManager(deptID)
	subjectID := f.addEmployeeSubject(deptID)

	created, err := f.service.Create(context.Background(), author.UserID.String(), CreateReviewRequest{
		EmployeeID: subjectID.String(),
		Period:     "2026-02",
		Rating:     7,
	})
	assert.NoError(t, err)

	_, err = f.service.Update(context.Background(), other.UserID.String(), created.ID, UpdateReviewRequest{
		Period: "2026-02",
		Rating: 3,
	})
	assert.ErrorIs(t, err, reviewerrors.ErrReviewNotAllowed)

	updated, err := f.service.Update(context.Background(), author.UserID.String(), created.ID, UpdateReviewRequest{
		Period: "2026-02",
		Rating: 9,
	})
	assert.NoError(t, err)
	assert.Equal(t, 9, updated.Rating)
}

func TestDelete_AdminAlwaysManagerOwnOnly(t *testing.T) {
	f := newReviewFixture()
	deptID := uuid.New()
	author := f.addManager(deptID)
	other := f.addManager(deptID)
	subjectID := f.addEmployeeSubject(deptID)

	adminID := uuid.New()
	f.resolver.actors[adminID.String()] = domain.Actor{UserID: adminID, Role: domain.RoleAdminHR}

	created, err := f.service.Create(context.Background(), author.UserID.String(), CreateReviewRequest{
		EmployeeID: subjectID.String(),
		Period:     "2026-02",
		Rating:     7,
	})
	assert.NoError(t, err)

	err = f.service.Delete(context.Background(), other.UserID.String(), created.ID)
	assert.ErrorIs(t, err, reviewerrors.ErrReviewNotAllowed)

	err = f.service.Delete(context.Background(), adminID.String(), created.ID)
	assert.NoError(t, err)
}
