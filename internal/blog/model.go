// File: internal/blog/model.go
package blog

import (
	"time"

	"propmatics_backend/internal/common"
	"propmatics_backend/internal/content"
)

// Post is the locally stored blog article.
type Post struct {
	common.BaseModel
	Title       string `gorm:"type:varchar(255);not null"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Content     string `gorm:"type:text;not null"`
	Excerpt     string `gorm:"type:varchar(500)"`
	ImageURL    string `gorm:"type:text"`
	Author      string `gorm:"type:varchar(150)"`
	IsPublished bool   `gorm:"not null;default:true"`
}

func (Post) TableName() string {
	return "blog_posts"
}

// ToContent converts the database record to the canonical entity.
func (p *Post) ToContent() content.BlogPost {
	return content.BlogPost{
		ID:        p.ID.String(),
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		ImageURL:  p.ImageURL,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
	}
}

// --- DTOs for API ---

type PostResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content,omitempty"`
	Excerpt   string    `json:"excerpt,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToPostResponse converts a canonical blog post for the API.
func ToPostResponse(p content.BlogPost) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Slug:      p.Slug,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		ImageURL:  p.ImageURL,
		Author:    p.Author,
		CreatedAt: p.CreatedAt,
	}
}

// ToPostListResponse converts posts for list pages, dropping the body.
func ToPostListResponse(p content.BlogPost) PostResponse {
	resp := ToPostResponse(p)
	resp.Content = ""
	return resp
}
