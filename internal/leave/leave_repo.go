package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListFilter drives the privileged index query. ScopeDepartmentIDs narrows
// the result to a manager's departments; nil means unscoped (AdminHR).
type ListFilter struct {
	ScopeDepartmentIDs []uuid.UUID
	Status             string
	DepartmentID       string
	Search             string
	StartFrom          *time.Time
	StartTo            *time.Time
	MinDays            int
	MaxDays            int
	SortBy             string
	SortDir            string
}

// LeaveRow is the joined index projection. Requester columns resolve through
// the employee profile when one exists, else directly through the aliased
// user id.
type LeaveRow struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	StartDate      time.Time
	EndDate        time.Time
	Reason         string
	Status         string
	RequesterName  string
	RequesterEmail string
	EmployeeCode   string
	Position       string
	DepartmentName string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	Delete(ctx context.Context, id string) error
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, status string, monthStart, monthEnd *time.Time) ([]LeaveRequest, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveRow, error)
	SubmitterContext(ctx context.Context, subjectID uuid.UUID) (name string, managerUserID string, err error)
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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.session(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.session(ctx).First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.session(ctx).Save(l).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.session(ctx).Delete(&LeaveRequest{}, "id = ?", id).Error
}

// FindByEmployee filters by calendar-month overlap, not containment: a
// request spanning a month boundary shows up under both months.
func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, status string, monthStart, monthEnd *time.Time) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC")

	if status != "" {
		db = db.Where("status = ?", status)
	}
	if monthStart != nil && monthEnd != nil {
		db = db.Where("start_date <= ? AND end_date >= ?", *monthEnd, *monthStart)
	}

	var leaves []LeaveRequest
	err := db.Find(&leaves).Error
	return leaves, err
}

var listSortColumns = map[string]string{
	"created_at":     "leave_requests.created_at",
	"start_date":     "leave_requests.start_date",
	"end_date":       "leave_requests.end_date",
	"status":         "leave_requests.status",
	"requester_name": "u.name",
	"duration":       "(leave_requests.end_date::date - leave_requests.start_date::date)",
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]LeaveRow, error) {
	db := r.db.WithContext(ctx).
		Table("leave_requests").
		Select(`leave_requests.id,
			leave_requests.employee_id,
			leave_requests.start_date,
			leave_requests.end_date,
			leave_requests.reason,
			leave_requests.status,
			COALESCE(u.name, '') AS requester_name,
			COALESCE(u.email, '') AS requester_email,
			COALESCE(e.employee_code, '') AS employee_code,
			COALESCE(e.position, '') AS position,
			COALESCE(d.name, '') AS department_name`).
		Joins("LEFT JOIN employees e ON e.id = leave_requests.employee_id").
		Joins("LEFT JOIN users u ON u.id = COALESCE(e.user_id, leave_requests.employee_id)").
		Joins("LEFT JOIN departments d ON d.id = e.department_id")

	if len(filter.ScopeDepartmentIDs) > 0 {
		db = db.Where("e.department_id IN ?", filter.ScopeDepartmentIDs)
	}
	if filter.Status != "" {
		db = db.Where("leave_requests.status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		db = db.Where("e.department_id = ?", filter.DepartmentID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where(
			"u.name ILIKE ? OR u.email ILIKE ? OR e.employee_code ILIKE ? OR e.position ILIKE ? OR d.name ILIKE ? OR leave_requests.reason ILIKE ?",
			like, like, like, like, like, like,
		)
	}
	if filter.StartFrom != nil {
		db = db.Where("leave_requests.start_date >= ?", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		db = db.Where("leave_requests.start_date <= ?", *filter.StartTo)
	}
	if filter.MinDays > 0 {
		db = db.Where("(leave_requests.end_date::date - leave_requests.start_date::date) + 1 >= ?", filter.MinDays)
	}
	if filter.MaxDays > 0 {
		db = db.Where("(leave_requests.end_date::date - leave_requests.start_date::date) + 1 <= ?", filter.MaxDays)
	}

	column, ok := listSortColumns[filter.SortBy]
	if !ok {
		column = "leave_requests.created_at"
	}
	dir := "DESC"
	if filter.SortDir == "asc" {
		dir = "ASC"
	}
	db = db.Order(column + " " + dir)

	var rows []LeaveRow
	err := db.Scan(&rows).Error
	return rows, err
}

// SubmitterContext returns the requester's display name and, when the
// subject sits in a department with a manager, that manager's user id.
func (r *repository) SubmitterContext(ctx context.Context, subjectID uuid.UUID) (string, string, error) {
	query := `
SELECT
	COALESCE(u.name, ''),
	COALESCE(d.manager_id::text, '')
FROM users u
LEFT JOIN employees e ON e.user_id = u.id
LEFT JOIN departments d ON d.id = e.department_id
WHERE u.id = COALESCE((SELECT user_id FROM employees WHERE id = ?), ?)
`

	var name, managerUserID string
	row := r.session(ctx).Raw(query, subjectID, subjectID).Row()
	if err := row.Scan(&name, &managerUserID); err != nil {
		return "", "", err
	}
	return name, managerUserID, nil
}
