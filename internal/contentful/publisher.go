// File: internal/contentful/publisher.go
package contentful

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// PropertyDraft is the locally-authored property shape handed to the
// publisher. Image bytes are optional; a draft without them publishes
// without an image link.
type PropertyDraft struct {
	Title          string
	Slug           string
	PropertyType   string
	Price          int64
	City           string
	Location       string
	Description    string
	CarpetArea     int
	FloorNumber    int
	TotalFloors    int
	PossessionDate string
	LoanApprovedBy string

	ImageData        []byte
	ImageFilename    string
	ImageContentType string

	DeveloperEntryID string
}

// Publisher is the write path: it assembles a management-API entry from a
// local draft and publishes it to the remote content store.
type Publisher struct {
	client   *Client
	uploader *Uploader
	logger   *zap.Logger
}

// NewPublisher creates a sync publisher.
func NewPublisher(client *Client, uploader *Uploader, logger *zap.Logger) *Publisher {
	return &Publisher{client: client, uploader: uploader, logger: logger}
}

// PublishProperty creates and publishes a property entry from a draft,
// returning the remote entry ID. The image upload is best-effort: if it
// fails the entry still publishes, just without an image. Optional
// numeric and date fields are included only when set to a non-zero
// value, matching how the remote content model treats absent fields.
func (p *Publisher) PublishProperty(ctx context.Context, draft PropertyDraft) (string, error) {
	if !p.client.WriteConfigured() {
		return "", ErrNotConfigured
	}

	locationText := draft.City
	if locationText == "" {
		locationText = draft.Location
	}
	coord := Geocode(locationText)

	fields := map[string]interface{}{
		"title":        localized(draft.Title),
		"slug":         localized(draft.Slug),
		"propertyType": localized(draft.PropertyType),
		"location": localized(map[string]interface{}{
			"lat": coord.Lat,
			"lon": coord.Lon,
		}),
		"price":       localized(draft.Price),
		"city":        localized(draft.City),
		"description": localized(EncodeDocument(draft.Description)),
	}

	if draft.CarpetArea > 0 {
		fields["carpetArea"] = localized(draft.CarpetArea)
	}
	if draft.FloorNumber > 0 {
		fields["floorNumber"] = localized(draft.FloorNumber)
	}
	if draft.TotalFloors > 0 {
		fields["totalNoOfFloors"] = localized(draft.TotalFloors)
	}
	if draft.PossessionDate != "" {
		fields["pocessionByDate"] = localized(draft.PossessionDate)
	}
	if draft.LoanApprovedBy != "" {
		fields["loanApprovedBy"] = localized(draft.LoanApprovedBy)
	}

	if len(draft.ImageData) > 0 {
		assetID, err := p.uploader.UploadImage(ctx, draft.ImageData, draft.ImageFilename, draft.ImageContentType, draft.Title)
		if err != nil {
			p.logger.Warn("Image upload failed, publishing property without image",
				zap.String("slug", draft.Slug),
				zap.Error(err),
			)
		} else {
			fields["image"] = localized(link("Asset", assetID))
		}
	}

	if draft.DeveloperEntryID != "" {
		fields["developer"] = localized(link("Entry", draft.DeveloperEntryID))
	}

	entry, err := p.client.CreateEntry(ctx, contentTypeProperty, fields)
	if err != nil {
		return "", fmt.Errorf("publish property %q: %w", draft.Slug, err)
	}

	if err := p.client.PublishEntry(ctx, entry.Sys.ID, entry.Sys.Version); err != nil {
		return "", fmt.Errorf("publish property %q: %w", draft.Slug, err)
	}

	p.logger.Info("Published property to remote content store",
		zap.String("slug", draft.Slug),
		zap.String("entryID", entry.Sys.ID),
	)
	return entry.Sys.ID, nil
}

// localized wraps a field value in the store's per-locale envelope.
func localized(v interface{}) map[string]interface{} {
	return map[string]interface{}{defaultLocale: v}
}

// link builds a sys link payload to an asset or entry.
func link(linkType, id string) map[string]interface{} {
	return map[string]interface{}{
		"sys": map[string]interface{}{
			"type":     "Link",
			"linkType": linkType,
			"id":       id,
		},
	}
}
