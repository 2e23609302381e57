package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Attendance holds one row per subject per calendar day; the unique index is
// what turns a double check-in into a conflict.
type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_employee_date"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:uq_attendance_employee_date"`

	CheckIn  *time.Time
	CheckOut *time.Time
	WorkHour float64 `gorm:"type:numeric(5,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
