package salary

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"hris-backend/internal/domain"
	salaryerrors "hris-backend/internal/salary/errors"
	"hris-backend/internal/shared/apperror"
)

type fakeRepo struct {
	slips map[uuid.UUID]*SalarySlip
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{slips: map[uuid.UUID]*SalarySlip{}}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, s *SalarySlip) error {
	for _, existing := range f.slips {
		if existing.EmployeeID == s.EmployeeID && existing.Period == s.Period {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_salary_employee_period"}
		}
	}
	cp := *s
	f.slips[s.ID] = &cp
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id string) (*SalarySlip, error) {
	s, ok := f.slips[uuid.MustParse(id)]
	if !ok {
		return nil, salaryerrors.ErrSalaryNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, s *SalarySlip) error {
	cp := *s
	f.slips[s.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.slips, uuid.MustParse(id))
	return nil
}

func (f *fakeRepo) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SalarySlip, error) {
	var out []SalarySlip
	for _, s := range f.slips {
		if s.EmployeeID == employeeID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]SalaryRow, error) {
	return nil, nil
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

type salaryFixture struct {
	service   Service
	repo      *fakeRepo
	resolver  *fakeResolver
	redisMock redismock.ClientMock
	adminID   uuid.UUID
}

func newSalaryFixture() *salaryFixture {
	repo := newFakeRepo()
	rdb, redisMock := redismock.NewClientMock()

	adminID := uuid.New()
	resolver := &fakeResolver{
		actors: map[string]domain.Actor{
			adminID.String(): {UserID: adminID, Role: domain.RoleAdminHR},
		},
		subjects: map[uuid.UUID]domain.Subject{},
	}

	return &salaryFixture{
		service:   NewService(repo, resolver, rdb),
		repo:      repo,
		resolver:  resolver,
		redisMock: redisMock,
		adminID:   adminID,
	}
}

func (f *salaryFixture) addSubject() uuid.UUID {
	subjectID := uuid.New()
	f.resolver.subjects[subjectID] = domain.Subject{
		UserID: uuid.New(),
		Role:   domain.RoleEmployee,
	}
	return subjectID
}

func TestCreate_DerivesTotal(t *testing.T) {
	f := newSalaryFixture()
	subjectID := f.addSubject()
	f.redisMock.ExpectDel(GetSalarySelfKey(subjectID)).SetVal(1)

	resp, err := f.service.Create(context.Background(), f.adminID.String(), CreateSalaryRequest{
		EmployeeID:  subjectID.String(),
		Period:      "2026-02",
		BasicSalary: 9000000,
		Allowance:   1500000,
		Deduction:   250000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 10250000.0, resp.Total)
	assert.Equal(t, f.adminID.String(), resp.CreatedBy)
	assert.NoError(t, f.redisMock.ExpectationsWereMet())
}

func TestCreate_DuplicatePeriodConflicts(t *testing.T) {
	f := newSalaryFixture()
	subjectID := f.addSubject()
	f.redisMock.ExpectDel(GetSalarySelfKey(subjectID)).SetVal(1)

	req := CreateSalaryRequest{
		EmployeeID:  subjectID.String(),
		Period:      "2026-02",
		BasicSalary: 9000000,
	}

	_, err := f.service.Create(context.Background(), f.adminID.String(), req)
	assert.NoError(t, err)

	_, err = f.service.Create(context.Background(), f.adminID.String(), req)
	assert.ErrorIs(t, err, salaryerrors.ErrDuplicatePeriod)
}

func TestUpdate_RecomputesTotalAndInvalidatesCache(t *testing.T) {
	f := newSalaryFixture()
	subjectID := f.addSubject()
	f.redisMock.ExpectDel(GetSalarySelfKey(subjectID)).SetVal(1)

	created, err := f.service.Create(context.Background(), f.adminID.String(), CreateSalaryRequest{
		EmployeeID:  subjectID.String(),
		Period:      "2026-02",
		BasicSalary: 9000000,
		Allowance:   1000000,
	})
	assert.NoError(t, err)

	f.redisMock.ExpectDel(GetSalarySelfKey(subjectID)).SetVal(1)
	updated, err := f.service.Update(context.Background(), f.adminID.String(), created.ID, UpdateSalaryRequest{
		Period:      "2026-02",
		BasicSalary: 9000000,
		Allowance:   1000000,
		Deduction:   500000,
	})

	assert.NoError(t, err)
	assert.Equal(t, 9500000.0, updated.Total)
	assert.NoError(t, f.redisMock.ExpectationsWereMet())
}

func TestListSelf_ServedFromCache(t *testing.T) {
	f := newSalaryFixture()

	userID := uuid.New()
	employeeID := uuid.New()
	f.resolver.actors[userID.String()] = domain.Actor{
		UserID:     userID,
		Role:       domain.RoleEmployee,
		EmployeeID: &employeeID,
	}

	cached := []SalarySelfItem{{ID: uuid.NewString(), Period: "2026-01", Total: 9000000}}
	payload, _ := json.Marshal(cached)
	f.redisMock.ExpectGet(GetSalarySelfKey(employeeID)).SetVal(string(payload))

	items, err := f.service.ListSelf(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Equal(t, cached, items)
	assert.NoError(t, f.redisMock.ExpectationsWereMet())
}

func TestListSelf_CacheMissFillsRedis(t *testing.T) {
	f := newSalaryFixture()

	userID := uuid.New()
	employeeID := uuid.New()
	f.resolver.actors[userID.String()] = domain.Actor{
		UserID:     userID,
		Role:       domain.RoleEmployee,
		EmployeeID: &employeeID,
	}

	slip := &SalarySlip{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		CreatedBy:   f.adminID,
		Period:      "2026-01",
		BasicSalary: 9000000,
	}
	slip.ComputeTotal()
	f.repo.slips[slip.ID] = slip

	cachedPayload, _ := json.Marshal([]SalarySelfItem{{
		ID:          slip.ID.String(),
		Period:      slip.Period,
		BasicSalary: slip.BasicSalary,
		Allowance:   slip.Allowance,
		Deduction:   slip.Deduction,
		Total:       slip.Total,
		Remarks:     slip.Remarks,
	}})

	key := GetSalarySelfKey(employeeID)
	f.redisMock.ExpectGet(key).RedisNil()
	f.redisMock.ExpectSet(key, string(cachedPayload), 1*time.Hour).SetVal("OK")

	items, err := f.service.ListSelf(context.Background(), userID.String())
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 9000000.0, items[0].Total)
	assert.NoError(t, f.redisMock.ExpectationsWereMet())
}
