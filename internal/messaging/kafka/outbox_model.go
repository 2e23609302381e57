package kafka

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEventModel mirrors the outbox_events table for schema migration.
// The repository itself speaks raw SQL.
type OutboxEventModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID     string    `gorm:"size:64"`
	AggregateType string    `gorm:"size:64;not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;index"`
	EventType     string    `gorm:"size:64;not null"`
	Topic         string    `gorm:"size:128;not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	Status        string    `gorm:"size:16;not null;default:pending;index"`
	RetryCount    int       `gorm:"not null;default:0"`
	ErrorMessage  *string   `gorm:"size:500"`
	NextRetryAt   *time.Time
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (OutboxEventModel) TableName() string { return "outbox_events" }
