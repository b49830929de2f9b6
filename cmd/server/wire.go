// File: cmd/server/wire.go
//go:build wireinject
// +build wireinject

package main

import (
	"log"

	"propmatics_backend/internal/app"
	"propmatics_backend/internal/blog"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/contact"
	"propmatics_backend/internal/contentful"
	"propmatics_backend/internal/developer"
	"propmatics_backend/internal/jobs"
	"propmatics_backend/internal/mailer"
	"propmatics_backend/internal/notification"
	"propmatics_backend/internal/platform/database"
	"propmatics_backend/internal/platform/logger"
	"propmatics_backend/internal/property"

	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// initializeServer is the main Wire injector.
func initializeServer(cfg *config.Config) (*app.Server, func(), error) {
	wire.Build(
		// Platform Layer
		logger.New,
		database.NewGORM,
		provideCleanup,

		// Remote content store
		contentful.NewClient,
		contentful.NewParser,
		contentful.NewResolver,
		contentful.NewUploader,
		contentful.NewPublisher,
		wire.Bind(new(property.ContentResolver), new(*contentful.Resolver)),
		wire.Bind(new(property.SyncPublisher), new(*contentful.Publisher)),
		wire.Bind(new(developer.ContentResolver), new(*contentful.Resolver)),
		wire.Bind(new(blog.ContentResolver), new(*contentful.Resolver)),
		wire.Bind(new(notification.ContentResolver), new(*contentful.Resolver)),

		// Domain Modules
		property.NewGORMRepository,
		property.NewService,
		property.NewHandler,
		developer.NewGORMRepository,
		developer.NewService,
		developer.NewHandler,
		blog.NewGORMRepository,
		blog.NewService,
		blog.NewHandler,
		notification.NewGORMRepository,
		notification.NewService,
		notification.NewHandler,
		mailer.NewSMTPMailer,
		contact.NewGORMRepository,
		contact.NewService,
		contact.NewHandler,
		jobs.NewContentSyncJob,

		// Application Layer
		app.NewServer,
	)
	return nil, nil, nil
}

func provideCleanup(logger *zap.Logger, db *gorm.DB) func() {
	return func() {
		logger.Info("Executing cleanup tasks...")
		database.CloseGORMDB(db)
		if err := logger.Sync(); err != nil {
			log.Printf("ERROR: Failed to sync logger during cleanup: %v", err)
		}
		log.Println("Cleanup finished.")
	}
}
