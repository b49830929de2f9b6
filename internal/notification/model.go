// File: internal/notification/model.go
package notification

import (
	"propmatics_backend/internal/common"
	"propmatics_backend/internal/content"
)

// Notification is a locally stored site announcement, typically linking
// to a document such as a price list or an RERA certificate.
type Notification struct {
	common.BaseModel
	Title       string `gorm:"type:varchar(255);not null"`
	Subject     string `gorm:"type:varchar(500)"`
	DocumentURL string `gorm:"type:text"`
	Date        string `gorm:"type:varchar(10);not null;index"`
	IsActive    bool   `gorm:"not null;default:true"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ToContent converts the database record to the canonical entity.
func (n *Notification) ToContent() content.Notification {
	return content.Notification{
		ID:          n.ID.String(),
		Title:       n.Title,
		Subject:     n.Subject,
		DocumentURL: n.DocumentURL,
		Date:        n.Date,
		IsActive:    n.IsActive,
		CreatedAt:   n.CreatedAt,
	}
}

// --- DTOs for API ---

type CreateNotificationRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Subject     string `json:"subject,omitempty" binding:"omitempty,max=500"`
	DocumentURL string `json:"document_url,omitempty" binding:"omitempty,url"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
}

type NotificationResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subject     string `json:"subject,omitempty"`
	DocumentURL string `json:"document_url,omitempty"`
	Date        string `json:"date"`
}

// ToNotificationResponse converts a canonical notification for the API.
func ToNotificationResponse(n content.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Subject:     n.Subject,
		DocumentURL: n.DocumentURL,
		Date:        n.Date,
	}
}
