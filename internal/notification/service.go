// File: internal/notification/service.go
package notification

import (
	"context"
	"strings"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/content"

	"go.uber.org/zap"
)

// ContentResolver is the remote read path the service uses when the
// deployment serves content from the remote store.
type ContentResolver interface {
	ListNotifications(ctx context.Context, limit int) ([]content.Notification, error)
}

// Service defines the interface for notification business logic.
type Service interface {
	ListNotifications(ctx context.Context, limit int) ([]content.Notification, error)
	CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error)
}

type service struct {
	repo     Repository
	resolver ContentResolver
	logger   *zap.Logger
	source   string
}

// NewService creates a new notification service.
func NewService(repo Repository, resolver ContentResolver, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
		source:   cfg.ContentSource,
	}
}

// ListNotifications returns active announcements, most recent date first.
// Inactive records are filtered out regardless of source; remote fetch
// failures degrade to an empty list.
func (s *service) ListNotifications(ctx context.Context, limit int) ([]content.Notification, error) {
	if s.source == config.ContentSourceContentful {
		notifications, err := s.resolver.ListNotifications(ctx, limit)
		if err != nil {
			s.logger.Error("Failed to resolve notifications from remote store", zap.Error(err))
			return []content.Notification{}, nil
		}
		active := make([]content.Notification, 0, len(notifications))
		for _, n := range notifications {
			if n.IsActive {
				active = append(active, n)
			}
		}
		return active, nil
	}

	records, err := s.repo.FindActive(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve notifications.")
	}
	notifications := make([]content.Notification, len(records))
	for i := range records {
		notifications[i] = records[i].ToContent()
	}
	return notifications, nil
}

func (s *service) CreateNotification(ctx context.Context, req CreateNotificationRequest) (*Notification, error) {
	notification := &Notification{
		Title:       strings.TrimSpace(req.Title),
		Subject:     strings.TrimSpace(req.Subject),
		DocumentURL: req.DocumentURL,
		Date:        req.Date,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to create notification", zap.Error(err), zap.String("title", req.Title))
		return nil, common.ErrInternalServer.WithDetails("Could not create notification.")
	}
	s.logger.Info("Notification created successfully",
		zap.String("id", notification.ID.String()), zap.String("title", notification.Title))
	return notification, nil
}
