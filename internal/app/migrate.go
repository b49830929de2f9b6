// File: internal/app/migrate.go
package app

import (
	"fmt"

	"propmatics_backend/internal/blog"
	"propmatics_backend/internal/contact"
	"propmatics_backend/internal/developer"
	"propmatics_backend/internal/notification"
	"propmatics_backend/internal/property"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RunMigrations applies the schema for every domain model. The uuid
// defaults on primary keys need the uuid-ossp extension on Postgres.
func RunMigrations(db *gorm.DB, logger *zap.Logger) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			return fmt.Errorf("failed to enable uuid-ossp extension: %w", err)
		}
	}

	models := []interface{}{
		&developer.Developer{},
		&property.Property{},
		&property.PropertyImage{},
		&property.PropertyVideo{},
		&blog.Post{},
		&notification.Notification{},
		&contact.Message{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Database migrations applied", zap.Int("models", len(models)))
	return nil
}
