// File: internal/property/repository.go
package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"propmatics_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines the interface for property data operations.
type Repository interface {
	Create(ctx context.Context, property *Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)
	FindBySlug(ctx context.Context, slug string) (*Property, error)
	Search(ctx context.Context, query PropertySearchQuery) ([]Property, error)
	FindRelated(ctx context.Context, city string, excludeID uuid.UUID, limit int) ([]Property, error)
	FindBySyncStatus(ctx context.Context, status SyncStatus) ([]Property, error)
	MarkSynced(ctx context.Context, id uuid.UUID, remoteEntryID string) error
	Update(ctx context.Context, property *Property) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM property repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) preloader(query *gorm.DB) *gorm.DB {
	return query.Preload("Developer").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_images.sort_order ASC")
		}).
		Preload("Videos", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_videos.sort_order ASC")
		})
}

func (r *gormRepository) Create(ctx context.Context, property *Property) error {
	if err := r.db.WithContext(ctx).Create(property).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "unique constraint") {
			return common.ErrConflict.WithDetails("A property with this slug already exists.")
		}
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var property Property
	err := r.preloader(r.db.WithContext(ctx)).First(&property, "properties.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Property not found.")
		}
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) FindBySlug(ctx context.Context, slug string) (*Property, error) {
	var property Property
	err := r.preloader(r.db.WithContext(ctx)).First(&property, "properties.slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Property not found.")
		}
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) Search(ctx context.Context, query PropertySearchQuery) ([]Property, error) {
	var properties []Property

	dbQuery := r.preloader(r.db.WithContext(ctx).Model(&Property{})).
		Where("properties.is_published = ?", true)

	if query.SearchTerm != "" {
		term := "%" + strings.ToLower(query.SearchTerm) + "%"
		dbQuery = dbQuery.Where(
			"LOWER(properties.title) LIKE ? OR LOWER(properties.city) LIKE ? OR LOWER(properties.location) LIKE ?",
			term, term, term,
		)
	}
	if query.PropertyType != "" {
		dbQuery = dbQuery.Where("properties.property_type = ?", query.PropertyType)
	}
	if query.City != "" {
		dbQuery = dbQuery.Where("LOWER(properties.city) = ?", strings.ToLower(query.City))
	}

	// Featured properties surface first on listing pages.
	err := dbQuery.Order("properties.is_featured DESC, properties.created_at DESC").Find(&properties).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search properties: %w", err)
	}
	return properties, nil
}

func (r *gormRepository) FindRelated(ctx context.Context, city string, excludeID uuid.UUID, limit int) ([]Property, error) {
	var properties []Property
	err := r.preloader(r.db.WithContext(ctx)).
		Where("LOWER(city) = ? AND id != ? AND is_published = ?", strings.ToLower(city), excludeID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&properties).Error
	return properties, err
}

func (r *gormRepository) FindBySyncStatus(ctx context.Context, status SyncStatus) ([]Property, error) {
	var properties []Property
	err := r.preloader(r.db.WithContext(ctx)).
		Where("sync_status = ?", status).
		Order("created_at ASC").
		Find(&properties).Error
	return properties, err
}

func (r *gormRepository) MarkSynced(ctx context.Context, id uuid.UUID, remoteEntryID string) error {
	result := r.db.WithContext(ctx).Model(&Property{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sync_status":     SyncSynced,
			"remote_entry_id": remoteEntryID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return common.ErrNotFound.WithDetails("Property not found.")
	}
	return nil
}

func (r *gormRepository) Update(ctx context.Context, property *Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}
