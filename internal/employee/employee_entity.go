package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_employee_user"`
	EmployeeCode     string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_code"`
	Position         string    `gorm:"type:varchar(120);not null"`
	DepartmentID     uuid.UUID `gorm:"type:uuid;not null;index"`
	JoinDate         time.Time `gorm:"type:date;not null"`
	EmploymentStatus string    `gorm:"type:varchar(20);not null;default:'permanent'"`
	Phone            string    `gorm:"type:varchar(30)"`
	Address          string    `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	User       *UserRef       `gorm:"foreignKey:UserID;references:ID"`
	Department *DepartmentRef `gorm:"foreignKey:DepartmentID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

type UserRef struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email"`
	Role  string    `gorm:"column:role"`
}

func (UserRef) TableName() string {
	return "users"
}

type DepartmentRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (DepartmentRef) TableName() string {
	return "departments"
}
