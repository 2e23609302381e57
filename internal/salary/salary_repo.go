package salary

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID string
	Period     string
	Search     string
}

type SalaryRow struct {
	ID           uuid.UUID
	EmployeeName string
	EmployeeCode string
	Period       string
	Total        float64
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *SalarySlip) error
	FindByID(ctx context.Context, id string) (*SalarySlip, error)
	Update(ctx context.Context, s *SalarySlip) error
	Delete(ctx context.Context, id string) error
	FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SalarySlip, error)
	List(ctx context.Context, filter ListFilter) ([]SalaryRow, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) session(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, Context: ctx})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, s *SalarySlip) error {
	return r.session(ctx).Create(s).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalarySlip, error) {
	var s SalarySlip
	err := r.session(ctx).First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *SalarySlip) error {
	return r.session(ctx).Save(s).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.session(ctx).Delete(&SalarySlip{}, "id = ?", id).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID) ([]SalarySlip, error) {
	var slips []SalarySlip
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("period DESC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]SalaryRow, error) {
	db := r.db.WithContext(ctx).
		Table("salary_slips").
		Select(`salary_slips.id,
			COALESCE(u.name, '') AS employee_name,
			COALESCE(e.employee_code, '') AS employee_code,
			salary_slips.period,
			salary_slips.total`).
		Joins("LEFT JOIN employees e ON e.id = salary_slips.employee_id").
		Joins("LEFT JOIN users u ON u.id = COALESCE(e.user_id, salary_slips.employee_id)").
		Order("salary_slips.period DESC")

	if filter.EmployeeID != "" {
		db = db.Where("salary_slips.employee_id = ?", filter.EmployeeID)
	}
	if filter.Period != "" {
		db = db.Where("salary_slips.period = ?", filter.Period)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("u.name ILIKE ? OR e.employee_code ILIKE ?", like, like)
	}

	var rows []SalaryRow
	err := db.Scan(&rows).Error
	return rows, err
}
