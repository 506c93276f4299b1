package message

import (
	"context"

	"hotel/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id int64) (*domain.Message, error)
	Save(ctx context.Context, m *domain.Message) error
	Delete(ctx context.Context, id int64) error
	ListReceived(ctx context.Context, userID int64, page, size int) ([]domain.Message, int64, error)
	ListSent(ctx context.Context, userID int64, page, size int) ([]domain.Message, int64, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Message, error)
	Conversation(ctx context.Context, a, b int64) ([]domain.Message, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier pushes events to online users; *Hub implements it.
type Notifier interface {
	SendToUser(userID int64, message interface{}) bool
}
