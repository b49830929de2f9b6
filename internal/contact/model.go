// File: internal/contact/model.go
package contact

import (
	"time"

	"propmatics_backend/internal/common"
)

// Message is one contact form submission, optionally tied to the
// property the visitor was viewing.
type Message struct {
	common.BaseModel
	Name         string `gorm:"type:varchar(150);not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	Phone        string `gorm:"type:varchar(50)"`
	Subject      string `gorm:"type:varchar(255)"`
	Body         string `gorm:"column:message;type:text;not null"`
	PropertySlug string `gorm:"type:varchar(255);index"`
	IsRead       bool   `gorm:"not null;default:false;index"`
}

func (Message) TableName() string {
	return "contact_messages"
}

// --- DTOs for API ---

type CreateMessageRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=150"`
	Email        string `json:"email" binding:"required,email,max=255"`
	Phone        string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Subject      string `json:"subject,omitempty" binding:"omitempty,max=255"`
	Message      string `json:"message" binding:"required,min=10"`
	PropertySlug string `json:"property_slug,omitempty" binding:"omitempty,max=255"`
}

type MessageResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Subject      string    `json:"subject,omitempty"`
	Message      string    `json:"message"`
	PropertySlug string    `json:"property_slug,omitempty"`
	IsRead       bool      `json:"is_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToMessageResponse converts a message for the API.
func ToMessageResponse(m *Message) MessageResponse {
	return MessageResponse{
		ID:           m.ID.String(),
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Subject:      m.Subject,
		Message:      m.Body,
		PropertySlug: m.PropertySlug,
		IsRead:       m.IsRead,
		CreatedAt:    m.CreatedAt,
	}
}
