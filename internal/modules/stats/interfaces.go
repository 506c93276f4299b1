package stats

import (
	"context"
	"time"

	"hotel/internal/domain"
	"hotel/internal/repository"
)

// ReportRepository is the read side the engine aggregates over.
type ReportRepository interface {
	SumCompletedPayments(ctx context.Context, from, to time.Time) (float64, error)
	CountRooms(ctx context.Context) (int64, error)
	ReservationsCheckingIn(ctx context.Context, start, end time.Time) ([]domain.Reservation, error)
	CountByStatusCheckingIn(ctx context.Context, status domain.ReservationStatus, from, to time.Time) (int64, error)
	CountAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) (int64, error)
	CountArrivals(ctx context.Context, day time.Time) (int64, error)
	CountDepartures(ctx context.Context, day time.Time) (int64, error)
	AverageApprovedRating(ctx context.Context) (*float64, error)
	FindStatistics(ctx context.Context, t domain.StatisticType, start, end time.Time) ([]domain.Statistic, error)
}

var _ ReportRepository = (*repository.ReportRepository)(nil)
