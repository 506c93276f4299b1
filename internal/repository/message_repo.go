package repository

import (
	"context"

	"hotel/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) Save(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MessageRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Message{}, id).Error
}

func (r *MessageRepository) ListReceived(ctx context.Context, userID int64, page, size int) ([]domain.Message, int64, error) {
	return r.listPaged(ctx, "recipient_id = ?", userID, page, size)
}

func (r *MessageRepository) ListSent(ctx context.Context, userID int64, page, size int) ([]domain.Message, int64, error) {
	return r.listPaged(ctx, "sender_id = ?", userID, page, size)
}

func (r *MessageRepository) listPaged(ctx context.Context, cond string, userID int64, page, size int) ([]domain.Message, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).Where(cond, userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Message
	err := r.db.WithContext(ctx).Where(cond, userID).
		Scopes(paginate(page, size)).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, total, err
}

// ListForUser returns every message the user sent or received.
func (r *MessageRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Conversation returns the messages exchanged between a and b, oldest first.
func (r *MessageRepository) Conversation(ctx context.Context, a, b int64) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", a, b, b, a).
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&cnt).Error
	return cnt, err
}
