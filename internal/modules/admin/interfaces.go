package admin

import (
	"context"

	"hotel/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, role domain.UserRole, page, size int) ([]domain.User, int64, error)
	UpdateRole(ctx context.Context, id int64, role domain.UserRole) error
	SetEnabled(ctx context.Context, id int64, enabled bool) error
}
