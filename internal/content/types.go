// File: internal/content/types.go

// Package content holds the canonical in-memory representations of the
// site's published entities. Both sourcing backends (the relational store
// and the remote content store) normalize into these shapes, so nothing
// downstream of the ingestion boundary probes a record's shape again.
package content

import "time"

// Coordinate is a latitude/longitude pair. It is always present on a
// property: unknown locations fall back to a fixed city-center default.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PropertyType enumerates the fixed property categories.
type PropertyType string

const (
	PropertyIndependentVilla    PropertyType = "independent_villa"
	PropertyStandaloneApartment PropertyType = "standalone_apartment"
	PropertyTowers              PropertyType = "towers"
	PropertyGatedCommunity      PropertyType = "gated_community"
)

// Property is the canonical property listing.
type Property struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Slug           string       `json:"slug"`
	PropertyType   PropertyType `json:"property_type"`
	Price          int64        `json:"price"`
	City           string       `json:"city"`
	Location       string       `json:"location"`
	Coordinate     Coordinate   `json:"coordinate"`
	Description    string       `json:"description"`
	CarpetArea     *int         `json:"carpet_area,omitempty"`
	FloorNumber    *int         `json:"floor_number,omitempty"`
	TotalFloors    *int         `json:"total_floors,omitempty"`
	PossessionDate string       `json:"possession_date,omitempty"`
	LoanApprovedBy string       `json:"loan_approved_by,omitempty"`
	ImageURL       string       `json:"image_url,omitempty"`
	Developer      *Developer   `json:"developer,omitempty"`
	IsPublished    bool         `json:"is_published"`
	CreatedAt      time.Time    `json:"created_at"`
}

// Developer is the canonical property developer/builder.
type Developer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// BlogPost is the canonical blog post.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is a canonical site announcement.
type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject,omitempty"`
	DocumentURL string    `json:"document_url,omitempty"`
	Date        string    `json:"date"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
