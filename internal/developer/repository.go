// File: internal/developer/repository.go
package developer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"propmatics_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for developer data operations.
type Repository interface {
	Create(ctx context.Context, developer *Developer) error
	FindByID(ctx context.Context, id uuid.UUID) (*Developer, error)
	FindBySlug(ctx context.Context, slug string) (*Developer, error)
	FindAll(ctx context.Context) ([]Developer, error)
	Update(ctx context.Context, developer *Developer) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM developer repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, developer *Developer) error {
	if err := r.db.WithContext(ctx).Create(developer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("A developer with this name already exists.")
		}
		return fmt.Errorf("failed to create developer: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Developer, error) {
	var developer Developer
	if err := r.db.WithContext(ctx).First(&developer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Developer not found.")
		}
		return nil, err
	}
	return &developer, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Developer, error) {
	var developer Developer
	if err := r.db.WithContext(ctx).First(&developer, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Developer not found.")
		}
		return nil, err
	}
	return &developer, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]Developer, error) {
	var developers []Developer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&developers).Error
	return developers, err
}

func (r *gormRepository) Update(ctx context.Context, developer *Developer) error {
	return r.db.WithContext(ctx).Save(developer).Error
}
