// File: internal/developer/model.go
package developer

import (
	"propmatics_backend/internal/common"
	"propmatics_backend/internal/content"
)

// Developer is the locally stored builder/developer record. A developer
// that has been mirrored to the remote content store carries the remote
// entry ID so properties can link to it when they publish.
type Developer struct {
	common.BaseModel
	Name          string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug          string `gorm:"type:varchar(255);not null;uniqueIndex"`
	LogoURL       string `gorm:"type:text"`
	RemoteEntryID string `gorm:"type:varchar(64);index"`
}

func (Developer) TableName() string {
	return "developers"
}

// ToContent converts the database record to the canonical entity.
func (d *Developer) ToContent() content.Developer {
	return content.Developer{
		ID:      d.ID.String(),
		Name:    d.Name,
		LogoURL: d.LogoURL,
	}
}

// --- DTOs for API ---

type CreateDeveloperRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=255"`
	LogoURL string `json:"logo_url,omitempty" binding:"omitempty,url"`
}

type DeveloperResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// ToDeveloperResponse converts a canonical developer for the API.
func ToDeveloperResponse(d content.Developer) DeveloperResponse {
	return DeveloperResponse{
		ID:      d.ID,
		Name:    d.Name,
		LogoURL: d.LogoURL,
	}
}
