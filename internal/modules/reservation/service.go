package reservation

import (
	"context"
	"errors"
	"fmt"
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

const numberAttempts = 3

type Service struct {
	reservations ReservationRepository
	rooms        RoomReader
	publisher    events.Publisher
	loggerf      func(format string, args ...interface{})
	newNumber    func() string
}

func NewService(
	reservations ReservationRepository,
	rooms RoomReader,
	publisher events.Publisher,
	loggerf func(format string, args ...interface{}),
) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		reservations: reservations,
		rooms:        rooms,
		publisher:    publisher,
		loggerf:      loggerf,
		newNumber:    newReservationNumber,
	}
}

// newReservationNumber returns "RES-" followed by 8 uppercase hex characters.
func newReservationNumber() string {
	return "RES-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// CheckAvailability reports whether roomID has no live reservation in [checkIn, checkOut).
func (s *Service) CheckAvailability(ctx context.Context, roomID int64, checkIn, checkOut time.Time) (bool, error) {
	if err := validateStay(checkIn, checkOut); err != nil {
		return false, err
	}
	if _, err := s.room(ctx, roomID); err != nil {
		return false, err
	}
	busy, err := s.reservations.HasOverlap(ctx, roomID, checkIn, checkOut, 0)
	if err != nil {
		return false, err
	}
	return !busy, nil
}

func (s *Service) Create(ctx context.Context, caller access.Caller, req CreateReservationRequest) (*domain.Reservation, error) {
	if !access.CanAccess(caller, access.Reservation, access.Create) {
		return nil, ErrForbidden
	}
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}

	checkIn, _ := domain.ParseDate(req.CheckInDate)
	checkOut, _ := domain.ParseDate(req.CheckOutDate)
	if err := validateStay(checkIn, checkOut); err != nil {
		return nil, err
	}
	if _, err := s.room(ctx, req.RoomID); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		UserID:          caller.UserID,
		RoomID:          req.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		TotalPrice:      domain.Round2(req.TotalPrice),
		Status:          domain.ReservationPending,
		SpecialRequests: strings.TrimSpace(req.SpecialRequests),
	}

	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		res.ID = 0
		res.ReservationNumber = s.newNumber()
		err = s.reservations.CreateIfAvailable(ctx, res)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	switch {
	case errors.Is(err, repository.ErrRoomUnavailable):
		return nil, ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrRoomNotFound
	case err != nil:
		return nil, err
	}

	s.loggerf("level=info msg=reservation created reservation_id=%d number=%s room_id=%d user_id=%d",
		res.ID, res.ReservationNumber, res.RoomID, res.UserID)
	s.publish(ctx, events.ReservationCreated, res, "")
	return res, nil
}

func (s *Service) Get(ctx context.Context, caller access.Caller, id int64) (*domain.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Reservation, access.Read, res.UserID) {
		return nil, ErrForbidden
	}
	return res, nil
}

// Update applies only the fields present in req to the stored row, read and
// written under a row lock. Every field is validated before anything is
// written; changed dates are re-checked for availability. A status sent by
// a caller who may not set statuses is ignored.
func (s *Service) Update(ctx context.Context, caller access.Caller, id int64, req UpdateReservationRequest) (*domain.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Reservation, access.Update, res.UserID) {
		return nil, ErrForbidden
	}
	if req.Status != nil && !access.CanAccess(caller, access.Reservation, access.SetStatus) {
		s.loggerf("level=info msg=status ignored in reservation update reservation_id=%d by_user=%d", id, caller.UserID)
		req.Status = nil
	}

	fields := validator.Validate(req)
	if req.Status != nil && !req.Status.Valid() {
		if fields == nil {
			fields = validator.Errors{}
		}
		fields["status"] = "is not a valid reservation status"
	}
	if fields != nil {
		return nil, invalid(fields)
	}

	var previous domain.ReservationStatus
	updated, err := s.reservations.UpdateLocked(ctx, id, func(r *domain.Reservation) error {
		previous = r.Status
		return applyUpdate(r, req)
	})
	switch {
	case errors.Is(err, repository.ErrRoomUnavailable):
		return nil, ErrConflict
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, err
	}

	if updated.Status != previous {
		s.publish(ctx, events.ReservationStatusChanged, updated, previous)
	}
	return updated, nil
}

// applyUpdate merges the present fields of req into r. req must already have
// passed validation.
func applyUpdate(r *domain.Reservation, req UpdateReservationRequest) error {
	if req.CheckInDate != nil {
		if d, err := domain.ParseDate(*req.CheckInDate); err == nil {
			r.CheckInDate = d
		}
	}
	if req.CheckOutDate != nil {
		if d, err := domain.ParseDate(*req.CheckOutDate); err == nil {
			r.CheckOutDate = d
		}
	}
	if req.NumberOfGuests != nil {
		r.NumberOfGuests = *req.NumberOfGuests
	}
	if req.TotalPrice != nil {
		r.TotalPrice = domain.Round2(*req.TotalPrice)
	}
	if req.SpecialRequests != nil {
		r.SpecialRequests = strings.TrimSpace(*req.SpecialRequests)
	}
	if req.Status != nil {
		r.Status = *req.Status
	}
	if !r.CheckInDate.Before(r.CheckOutDate) {
		return invalid(validator.Errors{"check_out_date": "must be after check_in_date"})
	}
	return nil
}

// Cancel moves a pending or confirmed reservation to cancelled. Cancelling an
// already cancelled reservation succeeds without a write.
func (s *Service) Cancel(ctx context.Context, caller access.Caller, id int64) (*domain.Reservation, error) {
	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccess(caller, access.Reservation, access.Cancel, res.UserID) {
		return nil, ErrForbidden
	}

	switch res.Status {
	case domain.ReservationCancelled:
		return res, nil
	case domain.ReservationPending, domain.ReservationConfirmed:
	default:
		return nil, fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidTransition, res.Status)
	}

	previous := res.Status
	updated, err := s.reservations.UpdateStatus(ctx, id, domain.ReservationCancelled)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	s.loggerf("level=info msg=reservation cancelled reservation_id=%d by_user=%d", id, caller.UserID)
	s.publish(ctx, events.ReservationCancelled, updated, previous)
	return updated, nil
}

// SetStatus is the staff override: the status is written as given, with no
// availability re-check and no transition rules.
func (s *Service) SetStatus(ctx context.Context, caller access.Caller, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !access.CanAccess(caller, access.Reservation, access.SetStatus) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, invalid(validator.Errors{"status": "is not a valid reservation status"})
	}

	res, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := s.reservations.UpdateStatus(ctx, id, status)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case errors.Is(err, repository.ErrRoomUnavailable):
		return nil, ErrConflict
	case err != nil:
		return nil, err
	}

	s.loggerf("level=info msg=reservation status set reservation_id=%d from=%s to=%s by_user=%d",
		id, res.Status, status, caller.UserID)
	s.publish(ctx, events.ReservationStatusChanged, updated, res.Status)
	return updated, nil
}

func (s *Service) ListAll(ctx context.Context, caller access.Caller) ([]domain.Reservation, error) {
	if !access.CanAccess(caller, access.Reservation, access.List) {
		return nil, ErrForbidden
	}
	return s.reservations.List(ctx)
}

func (s *Service) ListMine(ctx context.Context, caller access.Caller) ([]domain.Reservation, error) {
	return s.reservations.ListByUser(ctx, caller.UserID)
}

func (s *Service) ListByStatus(ctx context.Context, caller access.Caller, status domain.ReservationStatus) ([]domain.Reservation, error) {
	if !access.CanAccess(caller, access.Reservation, access.List) {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, invalid(validator.Errors{"status": "is not a valid reservation status"})
	}
	return s.reservations.ListByStatus(ctx, status)
}

// ListByDate returns reservations arriving or departing on day.
func (s *Service) ListByDate(ctx context.Context, caller access.Caller, day time.Time) ([]domain.Reservation, error) {
	if !access.CanAccess(caller, access.Reservation, access.List) {
		return nil, ErrForbidden
	}
	return s.reservations.ListByDate(ctx, day)
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return res, err
}

func (s *Service) room(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoomNotFound
	}
	return room, err
}

func (s *Service) publish(ctx context.Context, eventType string, r *domain.Reservation, previous domain.ReservationStatus) {
	e := events.New(eventType, events.EventData{
		ReservationID:     events.Int64(r.ID),
		ReservationNumber: r.ReservationNumber,
		RoomID:            events.Int64(r.RoomID),
		UserID:            events.Int64(r.UserID),
		Status:            string(r.Status),
		PreviousStatus:    string(previous),
	})
	if err := s.publisher.Publish(ctx, e); err != nil {
		s.loggerf("level=warn msg=event publish failed type=%s reservation_id=%d err=%v", eventType, r.ID, err)
	}
}

func validateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return invalid(validator.Errors{"check_in_date": "is required", "check_out_date": "is required"})
	}
	if !checkIn.Before(checkOut) {
		return invalid(validator.Errors{"check_out_date": "must be after check_in_date"})
	}
	return nil
}
