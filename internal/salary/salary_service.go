package salary

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"hris-backend/internal/identity"
	salaryerrors "hris-backend/internal/salary/errors"
	"hris-backend/internal/shared/apperror"
)

const (
	SalarySelfKeyPrefix = "salaries:self:"
	salaryCacheTTL      = 1 * time.Hour
)

func GetSalarySelfKey(employeeID uuid.UUID) string {
	return SalarySelfKeyPrefix + employeeID.String()
}

type Service interface {
	Create(ctx context.Context, actorID string, req CreateSalaryRequest) (SalaryResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateSalaryRequest) (SalaryResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListSalaryQuery) ([]SalaryListItem, error)
	ListSelf(ctx context.Context, actorID string) ([]SalarySelfItem, error)
}

type service struct {
	repo     Repository
	resolver identity.Resolver
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, resolver identity.Resolver, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("salary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salary.service")
	}
	return &service{
		repo:     repo,
		resolver: resolver,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateSalaryRequest) (SalaryResponse, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return SalaryResponse{}, err
	}

	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalaryResponse{}, salaryerrors.ErrInvalidEmployeeID
	}
	if _, err := s.resolver.ResolveSubject(ctx, employeeID); err != nil {
		return SalaryResponse{}, err
	}

	slip := &SalarySlip{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		CreatedBy:   actor.UserID,
		Period:      req.Period,
		BasicSalary: req.BasicSalary,
		Allowance:   req.Allowance,
		Deduction:   req.Deduction,
		Remarks:     req.Remarks,
	}
	slip.ComputeTotal()

	if err := s.repo.Create(ctx, slip); err != nil {
		if isDuplicatePeriod(err) {
			return SalaryResponse{}, salaryerrors.ErrDuplicatePeriod
		}
		s.logger.Error("create salary slip failed", zap.Error(err))
		return SalaryResponse{}, err
	}

	s.invalidateSelfCache(ctx, employeeID)
	s.logger.Info("salary slip created",
		zap.String("salary_id", slip.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.String("period", slip.Period),
	)
	return mapToResponse(*slip), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateSalaryRequest) (SalaryResponse, error) {
	if _, err := s.resolver.Resolve(ctx, actorID); err != nil {
		return SalaryResponse{}, err
	}

	slip, err := s.findSlip(ctx, id)
	if err != nil {
		return SalaryResponse{}, err
	}

	slip.Period = req.Period
	slip.BasicSalary = req.BasicSalary
	slip.Allowance = req.Allowance
	slip.Deduction = req.Deduction
	slip.Remarks = req.Remarks
	slip.ComputeTotal()

	if err := s.repo.Update(ctx, slip); err != nil {
		if isDuplicatePeriod(err) {
			return SalaryResponse{}, salaryerrors.ErrDuplicatePeriod
		}
		s.logger.Error("update salary slip failed", zap.String("salary_id", id), zap.Error(err))
		return SalaryResponse{}, err
	}

	s.invalidateSelfCache(ctx, slip.EmployeeID)
	s.logger.Info("salary slip updated", zap.String("salary_id", id))
	return mapToResponse(*slip), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	slip, err := s.findSlip(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete salary slip failed", zap.String("salary_id", id), zap.Error(err))
		return err
	}

	s.invalidateSelfCache(ctx, slip.EmployeeID)
	s.logger.Info("salary slip deleted", zap.String("salary_id", id))
	return nil
}

func (s *service) List(ctx context.Context, q ListSalaryQuery) ([]SalaryListItem, error) {
	rows, err := s.repo.List(ctx, ListFilter{
		EmployeeID: q.EmployeeID,
		Period:     q.Period,
		Search:     q.Search,
	})
	if err != nil {
		return nil, err
	}

	items := make([]SalaryListItem, len(rows))
	for i, row := range rows {
		items[i] = SalaryListItem{
			ID:           row.ID.String(),
			EmployeeName: row.EmployeeName,
			EmployeeCode: row.EmployeeCode,
			Period:       row.Period,
			Total:        row.Total,
		}
	}
	return items, nil
}

// ListSelf is cached per subject: the slip history is read on every payday
// but only changes when AdminHR touches it.
func (s *service) ListSelf(ctx context.Context, actorID string) ([]SalarySelfItem, error) {
	actor, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return nil, err
	}
	subjectID, ok := actor.SubjectID()
	if !ok {
		return nil, apperror.ErrProfileNotAvailable
	}

	cacheKey := GetSalarySelfKey(subjectID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var items []SalarySelfItem
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		slips, err := s.repo.FindByEmployee(ctx, subjectID)
		if err != nil {
			return nil, err
		}

		items := make([]SalarySelfItem, len(slips))
		for i, slip := range slips {
			items[i] = SalarySelfItem{
				ID:          slip.ID.String(),
				Period:      slip.Period,
				BasicSalary: slip.BasicSalary,
				Allowance:   slip.Allowance,
				Deduction:   slip.Deduction,
				Total:       slip.Total,
				Remarks:     slip.Remarks,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(items); err == nil {
				s.rdb.Set(ctx, cacheKey, string(jsonData), salaryCacheTTL)
			}
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]SalarySelfItem), nil
}

func (s *service) invalidateSelfCache(ctx context.Context, employeeID uuid.UUID) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetSalarySelfKey(employeeID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("invalidate salary cache failed",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}

func (s *service) findSlip(ctx context.Context, id string) (*SalarySlip, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, salaryerrors.ErrInvalidSalaryID
	}

	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, salaryerrors.ErrSalaryNotFound
		}
		return nil, err
	}
	return slip, nil
}

func isDuplicatePeriod(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(slip SalarySlip) SalaryResponse {
	return SalaryResponse{
		ID:          slip.ID.String(),
		EmployeeID:  slip.EmployeeID.String(),
		CreatedBy:   slip.CreatedBy.String(),
		Period:      slip.Period,
		BasicSalary: slip.BasicSalary,
		Allowance:   slip.Allowance,
		Deduction:   slip.Deduction,
		Total:       slip.Total,
		Remarks:     slip.Remarks,
	}
}
