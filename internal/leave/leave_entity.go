package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest rows reference a subject id, not a strict employee foreign
// key: a profile-less AdminHR files requests under its own user id.
type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Reason    string    `gorm:"type:text;not null"`

	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	ReviewedBy   *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt   *time.Time
	ReviewerNote *string `gorm:"type:text"`
	Photo        *string `gorm:"type:varchar(255)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationDays counts calendar days, both endpoints inclusive.
func (l LeaveRequest) DurationDays() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}
