package review

import (
	"context"
	"database/sql"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var bareYear = regexp.MustCompile(`^\d{4}$`)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *PerformanceReview) error
	FindByID(ctx context.Context, id string) (*PerformanceReview, error)
	Update(ctx context.Context, r *PerformanceReview) error
	Delete(ctx context.Context, id string) error
	FindByEmployee(ctx context.Context, employeeID uuid.UUID, period string) ([]PerformanceReview, error)
	FindRecent(ctx context.Context, employeeID uuid.UUID, n int) ([]PerformanceReview, error)
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

func (r *repository) Create(ctx context.Context, pr *PerformanceReview) error {
	return r.session(ctx).Create(pr).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*PerformanceReview, error) {
	var pr PerformanceReview
	err := r.session(ctx).First(&pr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pr, nil
}

func (r *repository) Update(ctx context.Context, pr *PerformanceReview) error {
	return r.session(ctx).Save(pr).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.session(ctx).Delete(&PerformanceReview{}, "id = ?", id).Error
}

// FindByEmployee filters by period label: a bare year matches every label
// that starts with it, anything else matches exactly.
func (r *repository) FindByEmployee(ctx context.Context, employeeID uuid.UUID, period string) ([]PerformanceReview, error) {
	db := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC")

	if period != "" {
		if bareYear.MatchString(period) {
			db = db.Where("period LIKE ?", period+"%")
		} else {
			db = db.Where("period = ?", period)
		}
	}

	var reviews []PerformanceReview
	err := db.Find(&reviews).Error
	return reviews, err
}

func (r *repository) FindRecent(ctx context.Context, employeeID uuid.UUID, n int) ([]PerformanceReview, error) {
	var reviews []PerformanceReview
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Limit(n).
		Find(&reviews).Error
	return reviews, err
}
