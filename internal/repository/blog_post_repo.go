package repository

import (
	"context"
	"strings"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type BlogPostRepository struct {
	db *gorm.DB
}

func NewBlogPostRepository(db *gorm.DB) *BlogPostRepository {
	return &BlogPostRepository{db: db}
}

func (r *BlogPostRepository) Create(ctx context.Context, p *domain.BlogPost) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BlogPostRepository) GetByID(ctx context.Context, id int64) (*domain.BlogPost, error) {
	var p domain.BlogPost
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BlogPostRepository) Save(ctx context.Context, p *domain.BlogPost) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *BlogPostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.BlogPost{}, id).Error
}

func (r *BlogPostRepository) ListPublished(ctx context.Context, page, size int) ([]domain.BlogPost, int64, error) {
	var total int64
	if err := r.published(ctx).Model(&domain.BlogPost{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.BlogPost
	err := r.published(ctx).
		Scopes(paginate(page, size)).
		Order("published_at DESC, id DESC").
		Find(&out).Error
	return out, total, err
}

// ListAllPublished is used for tag filtering, which runs over the decoded JSON tags.
func (r *BlogPostRepository) ListAllPublished(ctx context.Context) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := r.published(ctx).Order("published_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *BlogPostRepository) Search(ctx context.Context, keyword string) ([]domain.BlogPost, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	var out []domain.BlogPost
	err := r.published(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like).
		Order("published_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *BlogPostRepository) ListByAuthor(ctx context.Context, authorID int64) ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *BlogPostRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Where("published = ?", true)
}
