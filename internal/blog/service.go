// File: internal/blog/service.go
package blog

import (
	"context"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/content"

	"go.uber.org/zap"
)

// ContentResolver is the remote read path the service uses when the
// deployment serves content from the remote store.
type ContentResolver interface {
	ListBlogPosts(ctx context.Context) ([]content.BlogPost, error)
	GetBlogBySlug(ctx context.Context, slug string) (*content.BlogPost, error)
}

// Service defines the interface for blog-related business logic.
type Service interface {
	ListPosts(ctx context.Context) ([]content.BlogPost, error)
	GetPostBySlug(ctx context.Context, slug string) (*content.BlogPost, error)
}

type service struct {
	repo     Repository
	resolver ContentResolver
	logger   *zap.Logger
	source   string
}

// NewService creates a new blog service.
func NewService(repo Repository, resolver ContentResolver, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
		source:   cfg.ContentSource,
	}
}

// ListPosts returns published posts, newest first. Remote fetch failures
// degrade to an empty list.
func (s *service) ListPosts(ctx context.Context) ([]content.BlogPost, error) {
	if s.source == config.ContentSourceContentful {
		posts, err := s.resolver.ListBlogPosts(ctx)
		if err != nil {
			s.logger.Error("Failed to resolve blog posts from remote store", zap.Error(err))
			return []content.BlogPost{}, nil
		}
		return posts, nil
	}

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list blog posts", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve blog posts.")
	}
	posts := make([]content.BlogPost, len(records))
	for i := range records {
		posts[i] = records[i].ToContent()
	}
	return posts, nil
}

// GetPostBySlug returns one post. A missing slug is a not-found; a remote
// fetch failure is reported as unavailable rather than absent.
func (s *service) GetPostBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	if s.source == config.ContentSourceContentful {
		post, err := s.resolver.GetBlogBySlug(ctx, slug)
		if err != nil {
			s.logger.Error("Failed to resolve blog post from remote store",
				zap.String("slug", slug), zap.Error(err))
			return nil, common.ErrServiceUnavailable.WithDetails("Blog content is temporarily unavailable.")
		}
		if post == nil {
			return nil, common.ErrNotFound.WithDetails("Blog post not found.")
		}
		return post, nil
	}

	record, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	entity := record.ToContent()
	return &entity, nil
}
