package review

import (
	"time"

	"github.com/google/uuid"
)

// PerformanceReview records one rating of a subject by a reviewer. Period is
// a free-form label ("2025-10", "Q4-2025", "2025"); monthly aggregation only
// applies to labels in YYYY-MM form.
type PerformanceReview struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_performance_reviews_employee"`
	ReviewerID uuid.UUID `gorm:"type:uuid;not null;index"`

	Period string `gorm:"type:varchar(20);not null"`
	Rating int    `gorm:"not null"`
	Review string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
