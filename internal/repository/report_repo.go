package repository

import (
	"context"
	"database/sql"
	"time"

	"hotel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReportRepository serves the read-only aggregate queries behind revenue,
// occupancy and dashboard figures, plus statistic snapshot writes.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Atomic runs fn against a repository bound to one transaction.
func (r *ReportRepository) Atomic(ctx context.Context, fn func(tx *ReportRepository) error) error {
	return runInTx(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&ReportRepository{db: tx})
	})
}

// SumCompletedPayments adds up completed payments dated in [from, to).
func (r *ReportRepository) SumCompletedPayments(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", domain.PaymentCompleted).
		Where("payment_date >= ? AND payment_date < ?", from.UTC(), to.UTC()).
		Scan(&total).Error
	return total, err
}

func (r *ReportRepository) CountRooms(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Room{}).Count(&cnt).Error
	return cnt, err
}

// ReservationsCheckingIn lists non-cancelled reservations whose check-in
// date lies in [start, end], both inclusive.
func (r *ReportRepository) ReservationsCheckingIn(ctx context.Context, start, end time.Time) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("check_in_date >= ? AND check_in_date <= ?", domain.DateOf(start), domain.DateOf(end)).
		Where("status <> ?", domain.ReservationCancelled).
		Find(&out).Error
	return out, err
}

// CountByStatusCheckingIn counts reservations in status whose check-in is in [from, to).
func (r *ReportRepository) CountByStatusCheckingIn(ctx context.Context, status domain.ReservationStatus, from, to time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Reservation{}).
		Where("status = ?", status).
		Where("check_in_date >= ? AND check_in_date < ?", domain.DateOf(from), domain.DateOf(to)).
		Count(&cnt).Error
	return cnt, err
}

func (r *ReportRepository) CountAvailableRooms(ctx context.Context, checkIn, checkOut time.Time) (int64, error) {
	var cnt int64
	err := availableRooms(r.db.WithContext(ctx), checkIn, checkOut, "").Count(&cnt).Error
	return cnt, err
}

func (r *ReportRepository) CountArrivals(ctx context.Context, day time.Time) (int64, error) {
	return r.countLiveOn(ctx, "check_in_date", day)
}

func (r *ReportRepository) CountDepartures(ctx context.Context, day time.Time) (int64, error) {
	return r.countLiveOn(ctx, "check_out_date", day)
}

func (r *ReportRepository) countLiveOn(ctx context.Context, column string, day time.Time) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Reservation{}).
		Where(clause.Eq{Column: clause.Column{Name: column}, Value: domain.DateOf(day)}).
		Where("status <> ?", domain.ReservationCancelled).
		Count(&cnt).Error
	return cnt, err
}

// AverageApprovedRating is nil when there is no approved testimonial.
func (r *ReportRepository) AverageApprovedRating(ctx context.Context) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&domain.Testimonial{}).
		Select("AVG(rating)").
		Where("approved = ?", true).
		Scan(&avg).Error
	if err != nil || !avg.Valid {
		return nil, err
	}
	return &avg.Float64, nil
}

func (r *ReportRepository) FindStatistics(ctx context.Context, t domain.StatisticType, start, end time.Time) ([]domain.Statistic, error) {
	var out []domain.Statistic
	err := r.db.WithContext(ctx).
		Where("type = ?", t).
		Where("stat_date >= ? AND stat_date <= ?", domain.DateOf(start), domain.DateOf(end)).
		Order("stat_date").
		Find(&out).Error
	return out, err
}

// UpsertStatistics writes stats, replacing any existing row of the same type and month.
func (r *ReportRepository) UpsertStatistics(ctx context.Context, stats []domain.Statistic) error {
	if len(stats) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "type"}, {Name: "stat_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "value_string", "value_integer", "percentage_value"}),
		}).
		Create(&stats).Error
}
