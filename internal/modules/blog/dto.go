package blog

import (
	"strings"
	"time"

	"hotel/internal/domain"
)

type CreatePostRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	Content       string   `json:"content" validate:"required"`
	FeaturedImage string   `json:"featured_image" validate:"omitempty,url"`
	Tags          []string `json:"tags" validate:"max=20,dive,max=50"`
	Published     bool     `json:"published"`
}

// UpdatePostRequest leaves nil fields untouched.
type UpdatePostRequest struct {
	Title         *string   `json:"title" validate:"omitempty,min=1,max=255"`
	Content       *string   `json:"content" validate:"omitempty,min=1"`
	FeaturedImage *string   `json:"featured_image"`
	Tags          *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Published     *bool     `json:"published"`
}

type PostResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	AuthorID      int64      `json:"author_id"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Tags          []string   `json:"tags"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toResponse(p *domain.BlogPost) *PostResponse {
	tags := []string(p.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &PostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		AuthorID:      p.AuthorID,
		FeaturedImage: p.FeaturedImage,
		Tags:          tags,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toResponses(list []domain.BlogPost) []*PostResponse {
	out := make([]*PostResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	return out
}

func cleanTags(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
