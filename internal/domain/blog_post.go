package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type BlogPost struct {
	ID            int64                       `json:"id" gorm:"primaryKey"`
	Title         string                      `json:"title" gorm:"size:255;not null"`
	Content       string                      `json:"content" gorm:"type:text;not null"`
	AuthorID      int64                       `json:"author_id" gorm:"not null;index"`
	FeaturedImage string                      `json:"featured_image,omitempty"`
	Tags          datatypes.JSONSlice[string] `json:"tags"`
	Published     bool                        `json:"published" gorm:"not null;index"`
	PublishedAt   *time.Time                  `json:"published_at,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

// HasTag matches tags case-insensitively.
func (p *BlogPost) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(strings.TrimSpace(t), strings.TrimSpace(tag)) {
			return true
		}
	}
	return false
}
