package department

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string     `gorm:"type:varchar(120);uniqueIndex:uq_department_name;not null"`
	Description string     `gorm:"type:text"`
	ManagerID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Manager *ManagerRef `gorm:"foreignKey:ManagerID;references:ID"`
}

func (Department) TableName() string {
	return "departments"
}

type ManagerRef struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"column:name"`
}

func (ManagerRef) TableName() string {
	return "users"
}
