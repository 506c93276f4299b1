package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"hotel/internal/domain"
	"hotel/internal/events"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/validator"
	"hotel/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const transactionAttempts = 3

type Service struct {
	payments     paymentRepo
	reservations reservationReader
	publisher    events.Publisher
	loggerf      func(format string, args ...interface{})
	now          func() time.Time
	newTxID      func() string
}

func NewService(payments paymentRepo, reservations reservationReader, publisher events.Publisher, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		payments:     payments,
		reservations: reservations,
		publisher:    publisher,
		loggerf:      loggerf,
		now:          time.Now,
		newTxID:      newTransactionID,
	}
}

func newTransactionID() string {
	return "TRX-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// RecordPayment stores a local payment record. A payment recorded as
// completed confirms its reservation in the same transaction.
func (s *Service) RecordPayment(ctx context.Context, caller access.Caller, req RecordPaymentRequest) (*domain.Payment, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}

	res, err := s.reservation(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Payment, access.Create, res.UserID) {
		return nil, ErrForbidden
	}

	status := req.Status
	if status == "" {
		status = domain.PaymentPending
	}
	p := &domain.Payment{
		ReservationID:  req.ReservationID,
		Amount:         domain.Round2(req.Amount),
		PaymentMethod:  req.PaymentMethod,
		Status:         status,
		PaymentDate:    s.now().UTC().Truncate(time.Second),
		PaymentDetails: strings.TrimSpace(req.PaymentDetails),
	}

	var cascade repository.Cascade
	for attempt := 0; attempt < transactionAttempts; attempt++ {
		p.ID = 0
		p.TransactionID = s.newTxID()
		cascade, err = s.payments.Create(ctx, p)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrReservationNotFound
	case errors.Is(err, repository.ErrRoomUnavailable):
		return nil, ErrRoomConflict
	case err != nil:
		return nil, err
	}

	s.loggerf("level=info msg=payment recorded payment_id=%d transaction_id=%s reservation_id=%d amount=%.2f status=%s",
		p.ID, p.TransactionID, p.ReservationID, p.Amount, p.Status)
	s.afterCascade(ctx, p, cascade)
	return p, nil
}

// SetStatus changes a payment status. Moving to completed confirms the
// reservation whatever state it was in.
func (s *Service) SetStatus(ctx context.Context, caller access.Caller, id int64, status domain.PaymentStatus) (*domain.Payment, error) {
	if !access.CanAccess(caller, access.Payment, access.SetStatus) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, invalid(validator.Errors{"status": "is not a valid payment status"})
	}

	p, cascade, err := s.payments.UpdateStatus(ctx, id, status)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrRoomUnavailable):
		return nil, ErrRoomConflict
	case err != nil:
		return nil, err
	}

	s.loggerf("level=info msg=payment status set payment_id=%d status=%s by_user=%d", p.ID, p.Status, caller.UserID)
	s.afterCascade(ctx, p, cascade)
	return p, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	res, err := s.reservation(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Payment, access.Read, res.UserID) {
		return nil, ErrForbidden
	}
	return p, nil
}

// List returns every payment; admin and manager only.
func (s *Service) List(ctx context.Context, caller access.Caller) ([]domain.Payment, error) {
	if !access.CanAccess(caller, access.Payment, access.SetStatus) {
		return nil, ErrForbidden
	}
	return s.payments.List(ctx)
}

func (s *Service) ListByReservation(ctx context.Context, caller access.Caller, reservationID int64) ([]domain.Payment, error) {
	res, err := s.reservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Payment, access.List, res.UserID) {
		return nil, ErrForbidden
	}
	return s.payments.ListByReservation(ctx, reservationID)
}

func (s *Service) reservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	return res, err
}

func (s *Service) afterCascade(ctx context.Context, p *domain.Payment, c repository.Cascade) {
	if !c.Confirmed {
		return
	}
	if c.PreviousStatus.IsTerminal() {
		s.loggerf("level=warn msg=completed payment revived terminal reservation reservation_id=%d previous_status=%s payment_id=%d",
			p.ReservationID, c.PreviousStatus, p.ID)
	}

	e := events.New(events.PaymentCompleted, events.EventData{
		ReservationID:  events.Int64(p.ReservationID),
		PaymentID:      events.Int64(p.ID),
		TransactionID:  p.TransactionID,
		Amount:         p.Amount,
		Status:         string(p.Status),
		PreviousStatus: string(c.PreviousStatus),
	})
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.loggerf("level=warn msg=event publish failed type=%s payment_id=%d err=%v", e.Type, p.ID, err)
	}
}
