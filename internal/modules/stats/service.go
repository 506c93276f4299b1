package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/validator"
	"hotel/internal/repository"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
)

// SnapshotStore runs a unit of work against one transaction.
type SnapshotStore interface {
	Atomic(ctx context.Context, fn func(tx *repository.ReportRepository) error) error
}

type Service struct {
	reports   ReportRepository
	snapshots SnapshotStore
	loggerf   func(format string, args ...interface{})
	now       func() time.Time
}

func NewService(reports *repository.ReportRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		reports:   reports,
		snapshots: reports,
		loggerf:   loggerf,
		now:       time.Now,
	}
}

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}

func (s *Service) authorize(caller access.Caller, action access.Action) error {
	if !access.CanAccess(caller, access.Statistics, action) {
		return ErrForbidden
	}
	return nil
}

func validMonth(year, month int) error {
	fields := validator.Errors{}
	if year < 1 || year > 9999 {
		fields["year"] = "must be between 1 and 9999"
	}
	if month < 1 || month > 12 {
		fields["month"] = "must be between 1 and 12"
	}
	if len(fields) > 0 {
		return invalid(fields)
	}
	return nil
}

func validRange(start, end time.Time) error {
	if end.Before(start) {
		return invalid(validator.Errors{"end": "must not be before start"})
	}
	return nil
}

/* ---------- revenue ---------- */

// MonthlyRevenue sums completed payments dated inside the calendar month.
func (s *Service) MonthlyRevenue(ctx context.Context, caller access.Caller, year, month int) (float64, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return 0, err
	}
	if err := validMonth(year, month); err != nil {
		return 0, err
	}
	return monthlyRevenue(ctx, s.reports, year, time.Month(month))
}

func monthlyRevenue(ctx context.Context, r ReportRepository, year int, month time.Month) (float64, error) {
	from, to := domain.MonthRange(year, month)
	total, err := r.SumCompletedPayments(ctx, from, to)
	if err != nil {
		return 0, err
	}
	return domain.Round2(total), nil
}

// PeriodRevenue sums completed payments dated from start through the whole of end.
func (s *Service) PeriodRevenue(ctx context.Context, caller access.Caller, start, end time.Time) (float64, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return 0, err
	}
	if err := validRange(start, end); err != nil {
		return 0, err
	}
	total, err := s.reports.SumCompletedPayments(ctx, domain.DateOf(start), domain.DateOf(end).AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}
	return domain.Round2(total), nil
}

// YearlyRevenueByMonth returns revenue keyed by month number 1..12.
func (s *Service) YearlyRevenueByMonth(ctx context.Context, caller access.Caller, year int) (map[int]float64, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return nil, err
	}
	if err := validMonth(year, 1); err != nil {
		return nil, err
	}

	out := make(map[int]float64, 12)
	for m := time.January; m <= time.December; m++ {
		v, err := monthlyRevenue(ctx, s.reports, year, m)
		if err != nil {
			return nil, err
		}
		out[int(m)] = v
	}
	return out, nil
}

/* ---------- occupancy ---------- */

// OccupancyRate is booked nights over available room-nights for [start, end],
// both inclusive, as a percentage rounded half up to two decimals.
func (s *Service) OccupancyRate(ctx context.Context, caller access.Caller, start, end time.Time) (*OccupancyResponse, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return nil, err
	}
	if err := validRange(start, end); err != nil {
		return nil, err
	}
	return occupancy(ctx, s.reports, start, end)
}

func occupancy(ctx context.Context, r ReportRepository, start, end time.Time) (*OccupancyResponse, error) {
	start, end = domain.DateOf(start), domain.DateOf(end)

	rooms, err := r.CountRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := &OccupancyResponse{
		Start:      start.Format(domain.DateLayout),
		End:        end.Format(domain.DateLayout),
		TotalRooms: rooms,
	}
	if rooms == 0 {
		return out, nil
	}
	out.AvailableNights = rooms * int64(domain.DaysBetween(start, end)+1)

	reservations, err := r.ReservationsCheckingIn(ctx, start, end)
	if err != nil {
		return nil, err
	}
	for _, res := range reservations {
		checkIn, checkOut := res.CheckInDate, res.CheckOutDate
		if checkIn.Before(start) {
			checkIn = start
		}
		if checkOut.After(end) {
			checkOut = end
		}
		if nights := domain.DaysBetween(checkIn, checkOut); nights > 0 {
			out.BookedNights += int64(nights)
		}
	}

	out.OccupancyRate = domain.Round2(float64(out.BookedNights) / float64(out.AvailableNights) * 100)
	return out, nil
}

func monthlyOccupancy(ctx context.Context, r ReportRepository, year int, month time.Month) (*OccupancyResponse, error) {
	from, next := domain.MonthRange(year, month)
	return occupancy(ctx, r, from, next.AddDate(0, 0, -1))
}

/* ---------- counts ---------- */

// MonthlyReservationsCount counts confirmed reservations checking in during the month.
func (s *Service) MonthlyReservationsCount(ctx context.Context, caller access.Caller, year, month int) (int64, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return 0, err
	}
	if err := validMonth(year, month); err != nil {
		return 0, err
	}
	from, to := domain.MonthRange(year, time.Month(month))
	return s.reports.CountByStatusCheckingIn(ctx, domain.ReservationConfirmed, from, to)
}

// CustomerSatisfaction is the mean approved rating, nil with no approved testimonials.
func (s *Service) CustomerSatisfaction(ctx context.Context, caller access.Caller) (*float64, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return nil, err
	}
	return s.satisfaction(ctx)
}

func (s *Service) satisfaction(ctx context.Context) (*float64, error) {
	avg, err := s.reports.AverageApprovedRating(ctx)
	if err != nil || avg == nil {
		return nil, err
	}
	v := domain.Round2(*avg)
	return &v, nil
}

/* ---------- dashboard ---------- */

func (s *Service) Dashboard(ctx context.Context, caller access.Caller) (*DashboardResponse, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return nil, err
	}

	today := domain.DateOf(s.now().UTC())
	year, month := today.Year(), today.Month()

	revenue, err := monthlyRevenue(ctx, s.reports, year, month)
	if err != nil {
		return nil, err
	}
	occ, err := monthlyOccupancy(ctx, s.reports, year, month)
	if err != nil {
		return nil, err
	}
	available, err := s.reports.CountAvailableRooms(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	arrivals, err := s.reports.CountArrivals(ctx, today)
	if err != nil {
		return nil, err
	}
	departures, err := s.reports.CountDepartures(ctx, today)
	if err != nil {
		return nil, err
	}
	rating, err := s.satisfaction(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Date:                 today.Format(domain.DateLayout),
		MonthlyRevenue:       revenue,
		MonthlyOccupancyRate: occ.OccupancyRate,
		TotalRooms:           occ.TotalRooms,
		AvailableRoomsToday:  available,
		CheckInsToday:        arrivals,
		CheckOutsToday:       departures,
		CustomerSatisfaction: rating,
	}, nil
}

/* ---------- stored statistics ---------- */

func (s *Service) StatisticsByType(ctx context.Context, caller access.Caller, t domain.StatisticType, start, end time.Time) ([]domain.Statistic, error) {
	if err := s.authorize(caller, access.Read); err != nil {
		return nil, err
	}
	if !t.Valid() {
		return nil, invalid(validator.Errors{"type": "is not a valid statistic type"})
	}
	if err := validRange(start, end); err != nil {
		return nil, err
	}
	return s.reports.FindStatistics(ctx, t, start, end)
}

// SaveMonthlySnapshot computes the month's figures and upserts them keyed
// by (type, first of month). Reads and writes share one transaction.
func (s *Service) SaveMonthlySnapshot(ctx context.Context, caller access.Caller, year, month int) ([]domain.Statistic, error) {
	if err := s.authorize(caller, access.Create); err != nil {
		return nil, err
	}
	return s.snapshot(ctx, year, month)
}

// Snapshot is SaveMonthlySnapshot for trusted callers such as the scheduled job.
func (s *Service) Snapshot(ctx context.Context, year, month int) ([]domain.Statistic, error) {
	return s.snapshot(ctx, year, month)
}

func (s *Service) snapshot(ctx context.Context, year, month int) ([]domain.Statistic, error) {
	if err := validMonth(year, month); err != nil {
		return nil, err
	}
	m := time.Month(month)
	first, next := domain.MonthRange(year, m)

	var stats []domain.Statistic
	err := s.snapshots.Atomic(ctx, func(tx *repository.ReportRepository) error {
		revenue, err := monthlyRevenue(ctx, tx, year, m)
		if err != nil {
			return err
		}
		occ, err := monthlyOccupancy(ctx, tx, year, m)
		if err != nil {
			return err
		}
		confirmed, err := tx.CountByStatusCheckingIn(ctx, domain.ReservationConfirmed, first, next)
		if err != nil {
			return err
		}
		cancelled, err := tx.CountByStatusCheckingIn(ctx, domain.ReservationCancelled, first, next)
		if err != nil {
			return err
		}
		live, err := tx.ReservationsCheckingIn(ctx, first, next.AddDate(0, 0, -1))
		if err != nil {
			return err
		}

		stats = []domain.Statistic{
			{Type: domain.StatRevenue, Date: first, Value: &revenue},
			{Type: domain.StatOccupancyRate, Date: first, PercentageValue: &occ.OccupancyRate},
			{Type: domain.StatBookingsCount, Date: first, ValueInteger: &confirmed},
		}
		if total := int64(len(live)) + cancelled; total > 0 {
			rate := domain.Round2(float64(cancelled) / float64(total) * 100)
			stats = append(stats, domain.Statistic{Type: domain.StatCancellationRate, Date: first, PercentageValue: &rate})
		}
		if len(live) > 0 {
			var nights int
			for i := range live {
				nights += live[i].Nights()
			}
			avg := domain.Round2(float64(nights) / float64(len(live)))
			stats = append(stats, domain.Statistic{Type: domain.StatAverageStayDuration, Date: first, Value: &avg})
		}
		return tx.UpsertStatistics(ctx, stats)
	})
	if err != nil {
		return nil, err
	}

	s.loggerf("level=info msg=monthly statistics saved year=%d month=%d count=%d", year, month, len(stats))
	return stats, nil
}
