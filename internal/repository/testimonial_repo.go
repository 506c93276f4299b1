package repository

import (
	"context"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type TestimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

func (r *TestimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TestimonialRepository) GetByID(ctx context.Context, id int64) (*domain.Testimonial, error) {
	var t domain.Testimonial
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Save writes every column, so a false Approved is persisted too.
func (r *TestimonialRepository) Save(ctx context.Context, t *domain.Testimonial) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TestimonialRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Testimonial{}, id).Error
}

func (r *TestimonialRepository) ListApproved(ctx context.Context, page, size int) ([]domain.Testimonial, int64, error) {
	var total int64
	if err := r.approved(ctx, true).Model(&domain.Testimonial{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Testimonial
	err := r.approved(ctx, true).
		Scopes(paginate(page, size)).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, total, err
}

func (r *TestimonialRepository) ListPending(ctx context.Context) ([]domain.Testimonial, error) {
	var out []domain.Testimonial
	err := r.approved(ctx, false).Order("created_at, id").Find(&out).Error
	return out, err
}

func (r *TestimonialRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Testimonial, error) {
	var out []domain.Testimonial
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *TestimonialRepository) approved(ctx context.Context, approved bool) *gorm.DB {
	return r.db.WithContext(ctx).Where("approved = ?", approved)
}
