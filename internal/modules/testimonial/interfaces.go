package testimonial

import (
	"context"

	"hotel/internal/domain"
)

type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	GetByID(ctx context.Context, id int64) (*domain.Testimonial, error)
	Save(ctx context.Context, t *domain.Testimonial) error
	Delete(ctx context.Context, id int64) error
	ListApproved(ctx context.Context, page, size int) ([]domain.Testimonial, int64, error)
	ListPending(ctx context.Context) ([]domain.Testimonial, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Testimonial, error)
}
