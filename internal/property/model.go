// File: internal/property/model.go
package property

import (
	"time"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/content"
	"propmatics_backend/internal/developer"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SyncStatus tracks whether a locally created property has been mirrored
// to the remote content store.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
)

// Property is the locally stored listing record. Deployments serving
// content from the database read these directly; deployments serving from
// the remote store use this table as the authoring side of the sync.
type Property struct {
	common.BaseModel
	Title          string               `gorm:"type:varchar(255);not null"`
	Slug           string               `gorm:"type:varchar(255);not null;uniqueIndex"`
	PropertyType   content.PropertyType `gorm:"type:varchar(50);not null"`
	Price          int64                `gorm:"not null"`
	City           string               `gorm:"type:varchar(100);not null;index"`
	Location       string               `gorm:"type:varchar(255)"`
	Latitude       float64              `gorm:"type:decimal(10,8)"`
	Longitude      float64              `gorm:"type:decimal(11,8)"`
	Description    string               `gorm:"type:text"`
	CarpetArea     *int                 `gorm:""`
	FloorNumber    *int                 `gorm:""`
	TotalFloors    *int                 `gorm:"column:total_no_of_floors"`
	PossessionDate *string              `gorm:"type:varchar(10)"`
	LoanApprovedBy string               `gorm:"type:varchar(255)"`
	Amenities      pq.StringArray       `gorm:"type:text[]"`
	ImageURL       string               `gorm:"type:text"`
	ContactName    string               `gorm:"type:varchar(150)"`
	ContactEmail   string               `gorm:"type:varchar(255)"`
	ContactPhone   string               `gorm:"type:varchar(50)"`
	UserType       string               `gorm:"type:varchar(50)"`
	IsFeatured     bool                 `gorm:"not null;default:false;index"`
	IsPublished    bool                 `gorm:"not null;default:true"`
	SyncStatus     SyncStatus           `gorm:"type:varchar(20);not null;default:'pending';index"`
	RemoteEntryID  string               `gorm:"type:varchar(64);index"`

	DeveloperID *uuid.UUID           `gorm:"type:uuid"`
	Developer   *developer.Developer `gorm:"foreignKey:DeveloperID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Images      []PropertyImage      `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE;"`
	Videos      []PropertyVideo      `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE;"`
}

func (Property) TableName() string {
	return "properties"
}

// PropertyImage is one gallery image for a property, ordered by SortOrder.
type PropertyImage struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null"`
	ImageURL   string    `json:"image_url" gorm:"type:text;not null"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// PropertyVideo is one walkthrough or tour video for a property.
type PropertyVideo struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	PropertyID uuid.UUID `json:"property_id" gorm:"type:uuid;not null"`
	Title      string    `json:"title" gorm:"type:varchar(255)"`
	VideoURL   string    `json:"video_url" gorm:"type:text;not null"`
	SortOrder  int       `json:"sort_order" gorm:"default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PropertyVideo) TableName() string {
	return "property_videos"
}

// ToContent converts the database record to the canonical entity both
// content sources share.
func (p *Property) ToContent() content.Property {
	entity := content.Property{
		ID:             p.ID.String(),
		Title:          p.Title,
		Slug:           p.Slug,
		PropertyType:   p.PropertyType,
		Price:          p.Price,
		City:           p.City,
		Location:       p.Location,
		Coordinate:     content.Coordinate{Lat: p.Latitude, Lon: p.Longitude},
		Description:    p.Description,
		CarpetArea:     p.CarpetArea,
		FloorNumber:    p.FloorNumber,
		TotalFloors:    p.TotalFloors,
		LoanApprovedBy: p.LoanApprovedBy,
		ImageURL:       p.ImageURL,
		IsPublished:    p.IsPublished,
		CreatedAt:      p.CreatedAt,
	}
	if p.PossessionDate != nil {
		entity.PossessionDate = *p.PossessionDate
	}
	if p.Developer != nil {
		dev := p.Developer.ToContent()
		entity.Developer = &dev
	}
	return entity
}

// --- DTOs for API ---

type CreatePropertyRequest struct {
	Title          string     `json:"title" binding:"required,min=5,max=255"`
	Slug           string     `json:"slug,omitempty" binding:"omitempty,max=255"`
	PropertyType   string     `json:"property_type" binding:"required,oneof=independent_villa standalone_apartment towers gated_community"`
	Price          int64      `json:"price" binding:"required,gt=0"`
	City           string     `json:"city" binding:"required,max=100"`
	Location       string     `json:"location,omitempty" binding:"omitempty,max=255"`
	Description    string     `json:"description,omitempty"`
	CarpetArea     *int       `json:"carpet_area,omitempty" binding:"omitempty,gt=0"`
	FloorNumber    *int       `json:"floor_number,omitempty" binding:"omitempty,gte=0"`
	TotalFloors    *int       `json:"total_no_of_floors,omitempty" binding:"omitempty,gt=0"`
	PossessionDate *string    `json:"possession_date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	LoanApprovedBy string     `json:"loan_approved_by,omitempty" binding:"omitempty,max=255"`
	Amenities      []string   `json:"amenities,omitempty" binding:"omitempty,dive,max=100"`
	ImageURL       string     `json:"image_url,omitempty" binding:"omitempty,url"`
	ContactName    string     `json:"contact_name,omitempty" binding:"omitempty,max=150"`
	ContactEmail   string     `json:"contact_email,omitempty" binding:"omitempty,email,max=255"`
	ContactPhone   string     `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	UserType       string     `json:"user_type,omitempty" binding:"omitempty,oneof=owner agent builder"`
	DeveloperID    *uuid.UUID `json:"developer_id,omitempty"`
}

type PropertySearchQuery struct {
	SearchTerm   string `form:"q"`
	PropertyType string `form:"type" binding:"omitempty,oneof=independent_villa standalone_apartment towers gated_community"`
	City         string `form:"city"`
}

type PropertyResponse struct {
	ID             string                       `json:"id"`
	Title          string                       `json:"title"`
	Slug           string                       `json:"slug"`
	PropertyType   content.PropertyType         `json:"property_type"`
	Price          int64                        `json:"price"`
	City           string                       `json:"city"`
	Location       string                       `json:"location,omitempty"`
	Latitude       float64                      `json:"latitude"`
	Longitude      float64                      `json:"longitude"`
	Description    string                       `json:"description,omitempty"`
	CarpetArea     *int                         `json:"carpet_area,omitempty"`
	FloorNumber    *int                         `json:"floor_number,omitempty"`
	TotalFloors    *int                         `json:"total_no_of_floors,omitempty"`
	PossessionDate string                       `json:"possession_date,omitempty"`
	LoanApprovedBy string                       `json:"loan_approved_by,omitempty"`
	ImageURL       string                       `json:"image_url,omitempty"`
	Developer      *developer.DeveloperResponse `json:"developer,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
}

// ToPropertyResponse converts a canonical property for the API.
func ToPropertyResponse(p content.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:             p.ID,
		Title:          p.Title,
		Slug:           p.Slug,
		PropertyType:   p.PropertyType,
		Price:          p.Price,
		City:           p.City,
		Location:       p.Location,
		Latitude:       p.Coordinate.Lat,
		Longitude:      p.Coordinate.Lon,
		Description:    p.Description,
		CarpetArea:     p.CarpetArea,
		FloorNumber:    p.FloorNumber,
		TotalFloors:    p.TotalFloors,
		PossessionDate: p.PossessionDate,
		LoanApprovedBy: p.LoanApprovedBy,
		ImageURL:       p.ImageURL,
		CreatedAt:      p.CreatedAt,
	}
	if p.Developer != nil {
		dev := developer.ToDeveloperResponse(*p.Developer)
		resp.Developer = &dev
	}
	return resp
}
