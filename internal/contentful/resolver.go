// File: internal/contentful/resolver.go
package contentful

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"propmatics_backend/internal/content"

	"go.uber.org/zap"
)

// Content type identifiers in the remote space.
const (
	contentTypeProperty     = "property"
	contentTypeBlog         = "blogPost"
	contentTypeNotification = "notification"
	contentTypeDeveloper    = "developer"
)

// Resolver is the read path against the remote content store. It reports
// transport and credential failures as errors so callers can distinguish
// "nothing published" from "could not fetch"; degrading to empty results
// is a caller decision.
type Resolver struct {
	client *Client
	parser *Parser
	logger *zap.Logger
}

// NewResolver creates a content resolver. A missing delivery credential is
// logged once here; subsequent calls return ErrNotConfigured.
func NewResolver(client *Client, parser *Parser, logger *zap.Logger) *Resolver {
	if !client.ReadConfigured() {
		logger.Warn("Remote content store delivery credentials not configured, resolver calls will fail")
	}
	return &Resolver{client: client, parser: parser, logger: logger}
}

// ListProperties fetches all published properties, newest first, with
// linked developers and images resolved.
func (r *Resolver) ListProperties(ctx context.Context) ([]content.Property, error) {
	params := url.Values{}
	params.Set("content_type", contentTypeProperty)
	params.Set("order", "-sys.createdAt")
	params.Set("include", "1")

	collection, err := r.client.QueryEntries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	inc := collection.BuildIncludes()
	properties := make([]content.Property, 0, len(collection.Items))
	for _, item := range collection.Items {
		properties = append(properties, r.parser.ParseProperty(item, inc))
	}
	return properties, nil
}

// GetPropertyBySlug fetches a single property by its slug. A slug with no
// published entry returns (nil, nil); only transport failures are errors.
func (r *Resolver) GetPropertyBySlug(ctx context.Context, slug string) (*content.Property, error) {
	params := url.Values{}
	params.Set("content_type", contentTypeProperty)
	params.Set("fields.slug", slug)
	params.Set("include", "1")
	params.Set("limit", "1")

	collection, err := r.client.QueryEntries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("get property %q: %w", slug, err)
	}
	if len(collection.Items) == 0 {
		return nil, nil
	}

	inc := collection.BuildIncludes()
	prop := r.parser.ParseProperty(collection.Items[0], inc)
	return &prop, nil
}

// ListBlogPosts fetches all published blog posts, newest first.
func (r *Resolver) ListBlogPosts(ctx context.Context) ([]content.BlogPost, error) {
	params := url.Values{}
	params.Set("content_type", contentTypeBlog)
	params.Set("order", "-sys.createdAt")
	params.Set("include", "1")

	collection, err := r.client.QueryEntries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}

	inc := collection.BuildIncludes()
	posts := make([]content.BlogPost, 0, len(collection.Items))
	for _, item := range collection.Items {
		posts = append(posts, r.parser.ParseBlog(item, inc))
	}
	return posts, nil
}

// GetBlogBySlug fetches a single blog post by slug, (nil, nil) when absent.
func (r *Resolver) GetBlogBySlug(ctx context.Context, slug string) (*content.BlogPost, error) {
	params := url.Values{}
	params.Set("content_type", contentTypeBlog)
	params.Set("fields.slug", slug)
	params.Set("include", "1")
	params.Set("limit", "1")

	collection, err := r.client.QueryEntries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("get blog post %q: %w", slug, err)
	}
	if len(collection.Items) == 0 {
		return nil, nil
	}

	inc := collection.BuildIncludes()
	post := r.parser.ParseBlog(collection.Items[0], inc)
	return &post, nil
}

// ListNotifications fetches site announcements ordered by announcement
// date, most recent first. limit <= 0 means no limit.
func (r *Resolver) ListNotifications(ctx context.Context, limit int) ([]content.Notification, error) {
	params := url.Values{}
	params.Set("content_type", contentTypeNotification)
	params.Set("order", "-fields.date")
	params.Set("include", "1")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	collection, err := r.client.QueryEntries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	inc := collection.BuildIncludes()
	notifications := make([]content.Notification, 0, len(collection.Items))
	for _, item := range collection.Items {
		notifications = append(notifications, r.parser.ParseNotification(item, inc))
	}
	return notifications, nil
}

// ListDevelopers fetches all developers ordered by name.
func (r *Resolver) ListDevelopers(ctx context.Context) ([]content.Developer, error) {
	params := url.Values{}
	params.Set("content_type", contentTypeDeveloper)
	params.Set("order", "fields.name")
	params.Set("include", "1")

	collection, err := r.client.QueryEntries(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}

	inc := collection.BuildIncludes()
	developers := make([]content.Developer, 0, len(collection.Items))
	for _, item := range collection.Items {
		developers = append(developers, r.parser.ParseDeveloper(item, inc))
	}
	return developers, nil
}
