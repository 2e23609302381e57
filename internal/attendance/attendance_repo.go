package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	ScopeDepartmentIDs []uuid.UUID
	Date               *time.Time
	DepartmentID       string
	Search             string
	SortBy             string
	SortDir            string
}

type AttendanceRow struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	WorkHour       float64
	EmployeeName   string
	EmployeeCode   string
	DepartmentName string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, monthStart, monthEnd *time.Time) ([]Attendance, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceRow, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.session(ctx).Create(a).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.session(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.session(ctx).Save(a).Error
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, monthStart, monthEnd *time.Time) ([]Attendance, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC")

	if monthStart != nil && monthEnd != nil {
		db = db.Where("date BETWEEN ? AND ?", *monthStart, *monthEnd)
	}

	var rows []Attendance
	err := db.Find(&rows).Error
	return rows, err
}

var listSortColumns = map[string]string{
	"date":          "attendances.date",
	"check_in":      "attendances.check_in",
	"work_hour":     "attendances.work_hour",
	"employee_name": "u.name",
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]AttendanceRow, error) {
	db := r.db.WithContext(ctx).
		Table("attendances").
		Select(`attendances.id,
			attendances.employee_id,
			attendances.date,
			attendances.check_in,
			attendances.check_out,
			attendances.work_hour,
			COALESCE(u.name, '') AS employee_name,
			COALESCE(e.employee_code, '') AS employee_code,
			COALESCE(d.name, '') AS department_name`).
		Joins("LEFT JOIN employees e ON e.id = attendances.employee_id").
		Joins("LEFT JOIN users u ON u.id = COALESCE(e.user_id, attendances.employee_id)").
		Joins("LEFT JOIN departments d ON d.id = e.department_id")

	if len(filter.ScopeDepartmentIDs) > 0 {
		db = db.Where("e.department_id IN ?", filter.ScopeDepartmentIDs)
	}
	if filter.Date != nil {
		db = db.Where("attendances.date = ?", filter.Date.Format("2006-01-02"))
	}
	if filter.DepartmentID != "" {
		db = db.Where("e.department_id = ?", filter.DepartmentID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("u.name ILIKE ? OR e.employee_code ILIKE ? OR d.name ILIKE ?", like, like, like)
	}

	column, ok := listSortColumns[filter.SortBy]
	if !ok {
		column = "attendances.date"
	}
	dir := "DESC"
	if filter.SortDir == "asc" {
		dir = "ASC"
	}
	db = db.Order(column + " " + dir)

	var rows []AttendanceRow
	err := db.Scan(&rows).Error
	return rows, err
}
