// File: internal/notification/repository.go
package notification

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines the interface for notification data operations.
type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	FindActive(ctx context.Context, limit int) ([]Notification, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM notification repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, notification *Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *gormRepository) FindActive(ctx context.Context, limit int) ([]Notification, error) {
	var notifications []Notification
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&notifications).Error
	return notifications, err
}
