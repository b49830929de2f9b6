// File: internal/contact/repository.go
package contact

import (
	"context"
	"errors"

	"propmatics_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for contact message data operations.
type Repository interface {
	Create(ctx context.Context, message *Message) error
	FindAll(ctx context.Context, query common.PaginationQuery) ([]Message, *common.Pagination, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM contact repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, message *Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *gormRepository) FindAll(ctx context.Context, query common.PaginationQuery) ([]Message, *common.Pagination, error) {
	var messages []Message
	var totalItems int64

	dbQuery := r.db.WithContext(ctx).Model(&Message{})
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		return nil, nil, err
	}

	pagination := common.NewPagination(totalItems, query.Page, query.PageSize)
	err := dbQuery.Order("created_at DESC").
		Offset(query.Offset()).
		Limit(query.Limit()).
		Find(&messages).Error
	if err != nil {
		return nil, nil, err
	}
	return messages, pagination, nil
}

func (r *gormRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Message{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return common.ErrNotFound.WithDetails("Contact message not found.")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Contact message not found.")
	}
	return nil
}
