// File: internal/contentful/parser.go
package contentful

import (
	"encoding/json"
	"strings"

	"propmatics_backend/internal/content"

	"go.uber.org/zap"
)

// Includes indexes the linked records returned alongside a delivery query.
type Includes struct {
	Assets  map[string]Entry
	Entries map[string]Entry
}

// BuildIncludes indexes a collection's linked assets and entries by ID.
func (c *EntryCollection) BuildIncludes() Includes {
	inc := Includes{
		Assets:  make(map[string]Entry, len(c.Includes.Asset)),
		Entries: make(map[string]Entry, len(c.Includes.Entry)),
	}
	for _, a := range c.Includes.Asset {
		inc.Assets[a.Sys.ID] = a
	}
	for _, e := range c.Includes.Entry {
		inc.Entries[e.Sys.ID] = e
	}
	return inc
}

// Parser converts raw remote entries into canonical entities. Every
// optional field gets an explicit default; a record with no usable field
// set degrades to a stub entity so that sibling records in the same
// collection still render.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates an entry parser.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseProperty converts a raw property entry. A nested developer link is
// resolved one level deep only.
func (p *Parser) ParseProperty(e Entry, inc Includes) content.Property {
	if e.Fields == nil {
		p.logger.Error("Malformed property entry, degrading to stub", zap.String("entryID", e.Sys.ID))
		return content.Property{ID: e.Sys.ID, Title: "Error", Slug: ""}
	}

	prop := content.Property{
		ID:             e.Sys.ID,
		Title:          fieldString(e, "title"),
		Slug:           fieldString(e, "slug"),
		PropertyType:   content.PropertyType(fieldString(e, "propertyType")),
		Price:          fieldInt64(e, "price"),
		City:           fieldString(e, "city"),
		Location:       fieldString(e, "location_text"),
		Coordinate:     DefaultCoordinate,
		Description:    DecodeRichText(e.Fields["description"]),
		CarpetArea:     fieldInt(e, "carpetArea"),
		FloorNumber:    fieldInt(e, "floorNumber"),
		TotalFloors:    fieldInt(e, "totalNoOfFloors"),
		PossessionDate: fieldString(e, "pocessionByDate"),
		LoanApprovedBy: fieldString(e, "loanApprovedBy"),
		IsPublished:    true,
		CreatedAt:      e.Sys.CreatedAt,
	}

	if coord, ok := fieldCoordinate(e, "location"); ok {
		prop.Coordinate = coord
	}
	if assetID, ok := fieldLinkID(e, "image"); ok {
		prop.ImageURL = linkedAssetURL(inc, assetID)
	}
	if devID, ok := fieldLinkID(e, "developer"); ok {
		if devEntry, found := inc.Entries[devID]; found {
			dev := p.ParseDeveloper(devEntry, inc)
			prop.Developer = &dev
		}
	}
	return prop
}

// ParseBlog converts a raw blog post entry.
func (p *Parser) ParseBlog(e Entry, inc Includes) content.BlogPost {
	if e.Fields == nil {
		p.logger.Error("Malformed blog entry, degrading to stub", zap.String("entryID", e.Sys.ID))
		return content.BlogPost{ID: e.Sys.ID, Title: "Error", Slug: ""}
	}

	post := content.BlogPost{
		ID:        e.Sys.ID,
		Title:     fieldString(e, "title"),
		Slug:      fieldString(e, "slug"),
		Content:   DecodeRichText(e.Fields["content"]),
		Excerpt:   fieldString(e, "excerpt"),
		Author:    fieldString(e, "author"),
		CreatedAt: e.Sys.CreatedAt,
	}
	if assetID, ok := fieldLinkID(e, "image"); ok {
		post.ImageURL = linkedAssetURL(inc, assetID)
	}
	return post
}

// ParseNotification converts a raw site announcement entry.
func (p *Parser) ParseNotification(e Entry, inc Includes) content.Notification {
	if e.Fields == nil {
		p.logger.Error("Malformed notification entry, degrading to stub", zap.String("entryID", e.Sys.ID))
		return content.Notification{ID: e.Sys.ID, Title: "Error"}
	}

	notif := content.Notification{
		ID:        e.Sys.ID,
		Title:     fieldString(e, "title"),
		Subject:   fieldString(e, "subject"),
		Date:      fieldString(e, "date"),
		IsActive:  fieldBool(e, "isActive", true),
		CreatedAt: e.Sys.CreatedAt,
	}
	if assetID, ok := fieldLinkID(e, "document"); ok {
		notif.DocumentURL = linkedAssetURL(inc, assetID)
	}
	return notif
}

// ParseDeveloper converts a raw developer entry.
func (p *Parser) ParseDeveloper(e Entry, inc Includes) content.Developer {
	if e.Fields == nil {
		p.logger.Error("Malformed developer entry, degrading to stub", zap.String("entryID", e.Sys.ID))
		return content.Developer{ID: e.Sys.ID, Name: "Unknown"}
	}

	dev := content.Developer{
		ID:   e.Sys.ID,
		Name: fieldString(e, "name"),
	}
	if dev.Name == "" {
		dev.Name = "Unknown"
	}
	if assetID, ok := fieldLinkID(e, "logo"); ok {
		dev.LogoURL = linkedAssetURL(inc, assetID)
	}
	return dev
}

// --- field extraction helpers ---

func fieldString(e Entry, name string) string {
	raw, ok := e.Fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func fieldInt(e Entry, name string) *int {
	raw, ok := e.Fields[name]
	if !ok {
		return nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil
	}
	return &n
}

func fieldInt64(e Entry, name string) int64 {
	raw, ok := e.Fields[name]
	if !ok {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}

func fieldBool(e Entry, name string, fallback bool) bool {
	raw, ok := e.Fields[name]
	if !ok {
		return fallback
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return fallback
	}
	return b
}

func fieldCoordinate(e Entry, name string) (content.Coordinate, bool) {
	raw, ok := e.Fields[name]
	if !ok {
		return content.Coordinate{}, false
	}
	var coord content.Coordinate
	if err := json.Unmarshal(raw, &coord); err != nil {
		return content.Coordinate{}, false
	}
	return coord, true
}

// fieldLinkID extracts the target ID of a link field ({"sys":{"id":...}}).
func fieldLinkID(e Entry, name string) (string, bool) {
	raw, ok := e.Fields[name]
	if !ok {
		return "", false
	}
	var link struct {
		Sys Sys `json:"sys"`
	}
	if err := json.Unmarshal(raw, &link); err != nil || link.Sys.ID == "" {
		return "", false
	}
	return link.Sys.ID, true
}

// linkedAssetURL resolves an asset link against the query's includes and
// normalizes the stored URL to an absolute one.
func linkedAssetURL(inc Includes, assetID string) string {
	asset, ok := inc.Assets[assetID]
	if !ok || asset.Fields == nil {
		return ""
	}
	raw, ok := asset.Fields["file"]
	if !ok {
		return ""
	}
	var file struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &file); err != nil {
		return ""
	}
	return absoluteURL(file.URL)
}

// absoluteURL prefixes protocol-relative URLs (the remote store's asset
// URL form) with https.
func absoluteURL(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
