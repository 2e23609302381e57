package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Counter struct {
	CounterType string `gorm:"column:counter_type;type:varchar(50);primaryKey"`
	LastValue   int64  `gorm:"column:last_value;not null;default:0"`
	UpdatedAt   time.Time
}

func (Counter) TableName() string {
	return "counters"
}

type Repository interface {
	GetNextValue(ctx context.Context, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	var nextValue int64

	// Atomic UPSERT and increment so concurrent callers never see the same value
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, last_value, updated_at)
		VALUES (?, 1, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
