package testimonial

import (
	"context"
	"errors"
	"strings"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/validator"

	"gorm.io/gorm"
)

type Service struct {
	repo    TestimonialRepository
	loggerf func(format string, args ...interface{})
}

func NewService(repo TestimonialRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{repo: repo, loggerf: loggerf}
}

func (s *Service) ListApproved(ctx context.Context, page, size int) ([]domain.Testimonial, int64, error) {
	return s.repo.ListApproved(ctx, page, size)
}

func (s *Service) ListPending(ctx context.Context, caller access.Caller) ([]domain.Testimonial, error) {
	if !access.CanAccess(caller, access.Testimonial, access.List) {
		return nil, ErrForbidden
	}
	return s.repo.ListPending(ctx)
}

func (s *Service) ListMine(ctx context.Context, caller access.Caller) ([]domain.Testimonial, error) {
	return s.repo.ListByUser(ctx, caller.UserID)
}

// Get returns approved testimonials to anyone. Pending ones are visible to
// their author and to moderators only.
func (s *Service) Get(ctx context.Context, caller access.Caller, id int64) (*domain.Testimonial, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.Approved && !access.CanAccess(caller, access.Testimonial, access.Update, t.UserID) {
		return nil, ErrNotFound
	}
	return t, nil
}

// Create stores a testimonial awaiting moderation.
func (s *Service) Create(ctx context.Context, caller access.Caller, req CreateTestimonialRequest) (*domain.Testimonial, error) {
	req.Content = strings.TrimSpace(req.Content)
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}
	if caller.UserID == 0 {
		return nil, ErrForbidden
	}

	t := &domain.Testimonial{
		UserID:   caller.UserID,
		Content:  req.Content,
		Rating:   req.Rating,
		Approved: false,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=testimonial created id=%d user_id=%d rating=%d", t.ID, t.UserID, t.Rating)
	return t, nil
}

func (s *Service) Approve(ctx context.Context, caller access.Caller, id int64) (*domain.Testimonial, error) {
	if !access.CanAccess(caller, access.Testimonial, access.Approve) {
		return nil, ErrForbidden
	}
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Approved {
		return t, nil
	}
	t.Approved = true
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.loggerf("level=info msg=testimonial approved id=%d by=%d", t.ID, caller.UserID)
	return t, nil
}

// Update edits content and rating. An edit by anyone but a moderator sends
// the testimonial back to moderation.
func (s *Service) Update(ctx context.Context, caller access.Caller, id int64, req UpdateTestimonialRequest) (*domain.Testimonial, error) {
	req.Content = strings.TrimSpace(req.Content)
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Testimonial, access.Update, t.UserID) {
		return nil, ErrForbidden
	}

	if req.Content != "" {
		t.Content = req.Content
	}
	if req.Rating > 0 {
		t.Rating = req.Rating
	}
	if !access.CanAccess(caller, access.Testimonial, access.Approve) {
		t.Approved = false
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, caller access.Caller, id int64) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanAccess(caller, access.Testimonial, access.Delete, t.UserID) {
		return ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.loggerf("level=info msg=testimonial deleted id=%d by=%d", id, caller.UserID)
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Testimonial, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}
