package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification targets a user account, never a subject id: profile-less
// AdminHR accounts receive them like everyone else. EventID dedupes consumer
// redeliveries.
type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	EventID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_notification_event"`

	Type    string `gorm:"type:varchar(50);not null"`
	Message string `gorm:"type:text;not null"`
	IsRead  bool   `gorm:"not null;default:false;index:idx_notifications_user_read"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
