package payment

import (
	"context"

	"hotel/internal/domain"
	"hotel/internal/repository"
)

type paymentRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
	Create(ctx context.Context, p *domain.Payment) (repository.Cascade, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) (*domain.Payment, repository.Cascade, error)
}

type reservationReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
}
