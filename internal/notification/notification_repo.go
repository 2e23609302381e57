package notification

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	// Create is idempotent per event id: a redelivered event inserts nothing.
	Create(ctx context.Context, n *Notification) error
	FindByID(ctx context.Context, id string) (*Notification, error)
	FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.session(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(n).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.session(ctx).First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	db := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if unreadOnly {
		db = db.Where("is_read = ?", false)
	}

	var rows []Notification
	err := db.Find(&rows).Error
	return rows, err
}

func (r *repository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	return r.session(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *repository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.session(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}
