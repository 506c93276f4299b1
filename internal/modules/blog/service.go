package blog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("blog post not found")
)

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}

type PostRepository interface {
	Create(ctx context.Context, p *domain.BlogPost) error
	GetByID(ctx context.Context, id int64) (*domain.BlogPost, error)
	Save(ctx context.Context, p *domain.BlogPost) error
	Delete(ctx context.Context, id int64) error
	ListPublished(ctx context.Context, page, size int) ([]domain.BlogPost, int64, error)
	ListAllPublished(ctx context.Context) ([]domain.BlogPost, error)
	Search(ctx context.Context, keyword string) ([]domain.BlogPost, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]domain.BlogPost, error)
}

type Service struct {
	posts   PostRepository
	loggerf func(format string, args ...interface{})
	now     func() time.Time
}

func NewService(posts PostRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{posts: posts, loggerf: loggerf, now: time.Now}
}

func (s *Service) ListPublished(ctx context.Context, page, size int) ([]domain.BlogPost, int64, error) {
	return s.posts.ListPublished(ctx, page, size)
}

// GetPublished hides drafts behind ErrNotFound.
func (s *Service) GetPublished(ctx context.Context, id int64) (*domain.BlogPost, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetAny returns drafts too, for editors.
func (s *Service) GetAny(ctx context.Context, caller access.Caller, id int64) (*domain.BlogPost, error) {
	if !access.CanAccess(caller, access.BlogPost, access.Read) {
		return nil, ErrForbidden
	}
	return s.load(ctx, id)
}

func (s *Service) Search(ctx context.Context, keyword string) ([]domain.BlogPost, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, invalid(validator.Errors{"keyword": "is required"})
	}
	return s.posts.Search(ctx, keyword)
}

func (s *Service) ListByTag(ctx context.Context, tag string) ([]domain.BlogPost, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, invalid(validator.Errors{"tag": "is required"})
	}
	all, err := s.posts.ListAllPublished(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BlogPost, 0, len(all))
	for i := range all {
		if all[i].HasTag(tag) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

func (s *Service) ListMine(ctx context.Context, caller access.Caller) ([]domain.BlogPost, error) {
	return s.posts.ListByAuthor(ctx, caller.UserID)
}

func (s *Service) Create(ctx context.Context, caller access.Caller, req CreatePostRequest) (*domain.BlogPost, error) {
	if !access.CanAccess(caller, access.BlogPost, access.Create) {
		return nil, ErrForbidden
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}

	p := &domain.BlogPost{
		Title:         req.Title,
		Content:       req.Content,
		AuthorID:      caller.UserID,
		FeaturedImage: strings.TrimSpace(req.FeaturedImage),
		Tags:          cleanTags(req.Tags),
		Published:     req.Published,
	}
	if p.Published {
		now := s.now().UTC()
		p.PublishedAt = &now
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=blog post created id=%d author_id=%d published=%t", p.ID, p.AuthorID, p.Published)
	return p, nil
}

// Update applies the non-nil fields. PublishedAt is set the first time a
// post goes live and kept afterwards.
func (s *Service) Update(ctx context.Context, caller access.Caller, id int64, req UpdatePostRequest) (*domain.BlogPost, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.BlogPost, access.Update, p.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		if t := strings.TrimSpace(*req.Title); t != "" {
			p.Title = t
		}
	}
	if req.Content != nil {
		if c := strings.TrimSpace(*req.Content); c != "" {
			p.Content = c
		}
	}
	if req.FeaturedImage != nil {
		p.FeaturedImage = strings.TrimSpace(*req.FeaturedImage)
	}
	if req.Tags != nil {
		p.Tags = cleanTags(*req.Tags)
	}
	if req.Published != nil {
		p.Published = *req.Published
		if p.Published && p.PublishedAt == nil {
			now := s.now().UTC()
			p.PublishedAt = &now
		}
	}

	if err := s.posts.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id int64) error {
	p, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanAccess(caller, access.BlogPost, access.Delete, p.AuthorID) {
		return ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.loggerf("level=info msg=blog post deleted id=%d by=%d", id, caller.UserID)
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.BlogPost, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
