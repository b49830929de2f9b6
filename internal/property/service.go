// File: internal/property/service.go
package property

import (
	"context"
	"errors"
	"strings"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/config"
	"propmatics_backend/internal/content"
	"propmatics_backend/internal/contentful"
	"propmatics_backend/internal/mailer"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const relatedPropertiesLimit = 4

// ContentResolver is the remote read path the service uses when the
// deployment serves content from the remote store.
type ContentResolver interface {
	ListProperties(ctx context.Context) ([]content.Property, error)
	GetPropertyBySlug(ctx context.Context, slug string) (*content.Property, error)
}

// SyncPublisher mirrors locally authored properties to the remote store.
type SyncPublisher interface {
	PublishProperty(ctx context.Context, draft contentful.PropertyDraft) (string, error)
}

// ImageUpload carries an uploaded image through the create flow.
type ImageUpload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Service defines the interface for property-related business logic.
type Service interface {
	ListProperties(ctx context.Context, query PropertySearchQuery) ([]content.Property, error)
	GetPropertyBySlug(ctx context.Context, slug string) (*content.Property, error)
	GetRelatedProperties(ctx context.Context, slug string) ([]content.Property, error)
	CreateProperty(ctx context.Context, req CreatePropertyRequest, image *ImageUpload) (*Property, error)
	SyncPendingProperties(ctx context.Context) (int, error)
}

type service struct {
	repo         Repository
	resolver     ContentResolver
	publisher    SyncPublisher
	mail         mailer.Mailer
	operatorAddr string
	logger       *zap.Logger
	source       string
}

// NewService creates a new property service.
func NewService(repo Repository, resolver ContentResolver, publisher SyncPublisher, mail mailer.Mailer, cfg *config.Config, logger *zap.Logger) Service {
	return &service{
		repo:         repo,
		resolver:     resolver,
		publisher:    publisher,
		mail:         mail,
		operatorAddr: cfg.MailOperator,
		logger:       logger,
		source:       cfg.ContentSource,
	}
}

// ListProperties returns published properties from the configured source,
// newest first, with search and type filters applied. The remote store
// has no server-side text search for this content model, so in remote
// mode filters run in memory over the resolved set. Remote fetch failures
// degrade to an empty list so the listing page still renders.
func (s *service) ListProperties(ctx context.Context, query PropertySearchQuery) ([]content.Property, error) {
	if s.source == config.ContentSourceContentful {
		properties, err := s.resolver.ListProperties(ctx)
		if err != nil {
			s.logger.Error("Failed to resolve properties from remote store", zap.Error(err))
			return []content.Property{}, nil
		}
		return filterProperties(properties, query), nil
	}

	records, err := s.repo.Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search properties", zap.Error(err))
		return nil, common.ErrInternalServer.WithDetails("Could not retrieve properties.")
	}
	properties := make([]content.Property, len(records))
	for i := range records {
		properties[i] = records[i].ToContent()
	}
	return properties, nil
}

// GetPropertyBySlug returns one property. A missing slug is a not-found;
// a remote fetch failure is reported as unavailable rather than absent so
// a flaky upstream never renders as a deleted listing.
func (s *service) GetPropertyBySlug(ctx context.Context, slugToFind string) (*content.Property, error) {
	if s.source == config.ContentSourceContentful {
		property, err := s.resolver.GetPropertyBySlug(ctx, slugToFind)
		if err != nil {
			s.logger.Error("Failed to resolve property from remote store",
				zap.String("slug", slugToFind), zap.Error(err))
			return nil, common.ErrServiceUnavailable.WithDetails("Property content is temporarily unavailable.")
		}
		if property == nil {
			return nil, common.ErrNotFound.WithDetails("Property not found.")
		}
		return property, nil
	}

	record, err := s.repo.FindBySlug(ctx, slugToFind)
	if err != nil {
		return nil, err
	}
	entity := record.ToContent()
	return &entity, nil
}

// GetRelatedProperties returns up to four other properties in the same
// city as the given one, newest first.
func (s *service) GetRelatedProperties(ctx context.Context, slugToFind string) ([]content.Property, error) {
	if s.source == config.ContentSourceContentful {
		target, err := s.GetPropertyBySlug(ctx, slugToFind)
		if err != nil {
			return nil, err
		}
		all, err := s.resolver.ListProperties(ctx)
		if err != nil {
			s.logger.Error("Failed to resolve related properties", zap.String("slug", slugToFind), zap.Error(err))
			return []content.Property{}, nil
		}
		related := make([]content.Property, 0, relatedPropertiesLimit)
		for _, p := range all {
			if p.Slug == target.Slug {
				continue
			}
			if !strings.EqualFold(p.City, target.City) {
				continue
			}
			related = append(related, p)
			if len(related) == relatedPropertiesLimit {
				break
			}
		}
		return related, nil
	}

	record, err := s.repo.FindBySlug(ctx, slugToFind)
	if err != nil {
		return nil, err
	}
	records, err := s.repo.FindRelated(ctx, record.City, record.ID, relatedPropertiesLimit)
	if err != nil {
		s.logger.Error("Failed to find related properties", zap.String("slug", slugToFind), zap.Error(err))
		return []content.Property{}, nil
	}
	related := make([]content.Property, len(records))
	for i := range records {
		related[i] = records[i].ToContent()
	}
	return related, nil
}

// CreateProperty stores a new property and attempts to mirror it to the
// remote content store. A failed mirror leaves the record pending; the
// sync job retries it later.
func (s *service) CreateProperty(ctx context.Context, req CreatePropertyRequest, image *ImageUpload) (*Property, error) {
	finalSlug := strings.TrimSpace(req.Slug)
	if finalSlug == "" {
		finalSlug = slug.Make(req.Title)
	} else {
		finalSlug = slug.Make(finalSlug)
	}

	coord := contentful.Geocode(req.City)

	property := &Property{
		Title:          strings.TrimSpace(req.Title),
		Slug:           finalSlug,
		PropertyType:   content.PropertyType(req.PropertyType),
		Price:          req.Price,
		City:           strings.TrimSpace(req.City),
		Location:       strings.TrimSpace(req.Location),
		Latitude:       coord.Lat,
		Longitude:      coord.Lon,
		Description:    req.Description,
		CarpetArea:     req.CarpetArea,
		FloorNumber:    req.FloorNumber,
		TotalFloors:    req.TotalFloors,
		PossessionDate: req.PossessionDate,
		LoanApprovedBy: req.LoanApprovedBy,
		Amenities:      req.Amenities,
		ImageURL:       req.ImageURL,
		ContactName:    strings.TrimSpace(req.ContactName),
		ContactEmail:   strings.TrimSpace(req.ContactEmail),
		ContactPhone:   strings.TrimSpace(req.ContactPhone),
		UserType:       req.UserType,
		IsPublished:    true,
		SyncStatus:     SyncPending,
		DeveloperID:    req.DeveloperID,
	}

	if err := s.repo.Create(ctx, property); err != nil {
		// A generated slug that collides gets a unique suffix; an
		// explicitly chosen slug conflicts back to the caller.
		if apiErr, ok := common.IsAPIError(err); ok &&
			apiErr.StatusCode == common.ErrConflict.StatusCode && req.Slug == "" {
			property.Slug = finalSlug + "-" + uuid.NewString()[:8]
			err = s.repo.Create(ctx, property)
		}
		if err != nil {
			s.logger.Error("Failed to create property", zap.Error(err), zap.String("slug", property.Slug))
			return nil, err
		}
	}
	s.logger.Info("Property created successfully",
		zap.String("id", property.ID.String()), zap.String("slug", property.Slug))

	// Best-effort immediate sync; the record stays pending on failure.
	created, err := s.repo.FindByID(ctx, property.ID)
	if err == nil {
		property = created
	}
	if err := s.syncProperty(ctx, property, image); err != nil {
		s.logger.Warn("Property sync deferred, will retry",
			zap.String("slug", property.Slug), zap.Error(err))
	} else if s.operatorAddr != "" {
		subject := "New property published: " + property.Title
		body := "Slug: " + property.Slug + "\nCity: " + property.City
		if err := s.mail.Send([]string{s.operatorAddr}, subject, body); err != nil {
			s.logger.Warn("Failed to send publish notification email", zap.Error(err))
		}
	}
	return property, nil
}

// SyncPendingProperties publishes every pending property to the remote
// store and returns how many synced. Per-property failures are logged and
// skipped so one bad record never blocks the rest.
func (s *service) SyncPendingProperties(ctx context.Context) (int, error) {
	pending, err := s.repo.FindBySyncStatus(ctx, SyncPending)
	if err != nil {
		return 0, err
	}

	synced := 0
	for i := range pending {
		if err := s.syncProperty(ctx, &pending[i], nil); err != nil {
			if errors.Is(err, contentful.ErrNotConfigured) {
				// No credentials means nothing in this batch can sync.
				return synced, nil
			}
			s.logger.Error("Failed to sync property",
				zap.String("slug", pending[i].Slug), zap.Error(err))
			continue
		}
		synced++
	}
	return synced, nil
}

func (s *service) syncProperty(ctx context.Context, property *Property, image *ImageUpload) error {
	draft := contentful.PropertyDraft{
		Title:          property.Title,
		Slug:           property.Slug,
		PropertyType:   string(property.PropertyType),
		Price:          property.Price,
		City:           property.City,
		Location:       property.Location,
		Description:    property.Description,
		PossessionDate: stringValue(property.PossessionDate),
		LoanApprovedBy: property.LoanApprovedBy,
	}
	if property.CarpetArea != nil {
		draft.CarpetArea = *property.CarpetArea
	}
	if property.FloorNumber != nil {
		draft.FloorNumber = *property.FloorNumber
	}
	if property.TotalFloors != nil {
		draft.TotalFloors = *property.TotalFloors
	}
	if image != nil {
		draft.ImageData = image.Data
		draft.ImageFilename = image.Filename
		draft.ImageContentType = image.ContentType
	}
	if property.Developer != nil && property.Developer.RemoteEntryID != "" {
		draft.DeveloperEntryID = property.Developer.RemoteEntryID
	}

	entryID, err := s.publisher.PublishProperty(ctx, draft)
	if err != nil {
		return err
	}
	if err := s.repo.MarkSynced(ctx, property.ID, entryID); err != nil {
		return err
	}
	property.SyncStatus = SyncSynced
	property.RemoteEntryID = entryID
	return nil
}

// filterProperties applies the search query in memory, used when the
// content source cannot filter server-side.
func filterProperties(properties []content.Property, query PropertySearchQuery) []content.Property {
	filtered := make([]content.Property, 0, len(properties))
	term := strings.ToLower(strings.TrimSpace(query.SearchTerm))
	for _, p := range properties {
		if query.PropertyType != "" && string(p.PropertyType) != query.PropertyType {
			continue
		}
		if query.City != "" && !strings.EqualFold(p.City, query.City) {
			continue
		}
		if term != "" {
			haystack := strings.ToLower(p.Title + " " + p.City + " " + p.Location)
			if !strings.Contains(haystack, term) {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
