// File: internal/blog/repository.go
package blog

import (
	"context"
	"errors"

	"propmatics_backend/internal/common"

	"gorm.io/gorm"
)

// Repository defines the interface for blog data operations.
type Repository interface {
	FindAll(ctx context.Context) ([]Post, error)
	FindBySlug(ctx context.Context, slug string) (*Post, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM blog repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Post, error) {
	var posts []Post
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	var post Post
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Blog post not found.")
		}
		return nil, err
	}
	return &post, nil
}
