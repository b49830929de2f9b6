// File: internal/developer/service.go
package developer

import (
	"context"
	"strings"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/content"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// ContentResolver is the remote read path the service uses when the
// deployment serves content from the remote store.
type ContentResolver interface {
	ListDevelopers(ctx context.Context) ([]content.Developer, error)
}

// Service defines the interface for developer-related business logic.
type Service interface {
	ListDevelopers(ctx context.Context) ([]content.Developer, error)
	CreateDeveloper(ctx context.Context, req CreateDeveloperRequest) (*Developer, error)
}

type service struct {
	repo     Repository
	resolver ContentResolver
	logger   *zap.Logger
	source   string
}

// NewService creates a new developer service.
func NewService(repo Repository, resolver ContentResolver, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
		source:   cfg.ContentSource,
	}
}

// ListDevelopers returns all developers from the configured source. Remote
// fetch failures degrade to an empty list so listing pages still render.
func (s *service) ListDevelopers(ctx context.Context) ([]content.Developer, error) {
	if s.source == config.ContentSourceContentful {
		developers, err := s.resolver.ListDevelopers(ctx)
		if err != nil {
			s.logger.Error("Failed to resolve developers from remote store", zap.Error(err))
			return []content.Developer{}, nil
		}
		return developers, nil
	}

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list developers", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve developers.")
	}
	developers := make([]content.Developer, len(records))
	for i := range records {
		developers[i] = records[i].ToContent()
	}
	return developers, nil
}

func (s *service) CreateDeveloper(ctx context.Context, req CreateDeveloperRequest) (*Developer, error) {
	developer := &Developer{
		Name:    strings.TrimSpace(req.Name),
		Slug:    slug.Make(req.Name),
		LogoURL: req.LogoURL,
	}
	if err := s.repo.Create(ctx, developer); err != nil {
		s.logger.Error("Failed to create developer", zap.Error(err), zap.String("name", req.Name))
		return nil, err
	}
	s.logger.Info("Developer created successfully", zap.String("id", developer.ID.String()), zap.String("name", developer.Name))
	return developer, nil
}
