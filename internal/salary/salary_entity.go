package salary

import (
	"time"

	"github.com/google/uuid"
)

// SalarySlip is one payout record per subject per period label. Total is
// always recomputed server-side from the three components.
type SalarySlip struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_employee_period"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null"`

	Period      string  `gorm:"type:varchar(20);not null;uniqueIndex:uq_salary_employee_period"`
	BasicSalary float64 `gorm:"type:numeric(14,2);not null"`
	Allowance   float64 `gorm:"type:numeric(14,2);not null;default:0"`
	Deduction   float64 `gorm:"type:numeric(14,2);not null;default:0"`
	Total       float64 `gorm:"type:numeric(14,2);not null"`
	Remarks     string  `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeTotal derives the payout amount.
func (s *SalarySlip) ComputeTotal() {
	s.Total = s.BasicSalary + s.Allowance - s.Deduction
}
