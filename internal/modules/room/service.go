package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel/internal/domain"
	"hotel/internal/pkg/access"
	"hotel/internal/pkg/validator"
	"hotel/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("room not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

type Service struct {
	roomRepo *repository.RoomRepository
	loggerf  func(format string, args ...interface{})
}

func NewService(roomRepo *repository.RoomRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{roomRepo: roomRepo, loggerf: loggerf}
}

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}

/* ---------- READ ---------- */

func (s *Service) List(ctx context.Context) ([]domain.Room, error) {
	return s.roomRepo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return room, err
}

func (s *Service) ListByType(ctx context.Context, t domain.RoomType) ([]domain.Room, error) {
	if !t.Valid() {
		return nil, invalid(validator.Errors{"type": "is not a valid room type"})
	}
	return s.roomRepo.ListByType(ctx, t)
}

func (s *Service) ListByCapacity(ctx context.Context, capacity int) ([]domain.Room, error) {
	if capacity < 1 {
		return nil, invalid(validator.Errors{"capacity": "must be greater than or equal to 1"})
	}
	return s.roomRepo.ListByMinCapacity(ctx, capacity)
}

// FindAvailable lists rooms free for the whole stay; roomType may be empty.
func (s *Service) FindAvailable(ctx context.Context, checkIn, checkOut time.Time, roomType domain.RoomType) ([]domain.Room, error) {
	if !checkIn.Before(checkOut) {
		return nil, invalid(validator.Errors{"check_out": "must be after check_in"})
	}
	if roomType != "" && !roomType.Valid() {
		return nil, invalid(validator.Errors{"type": "is not a valid room type"})
	}
	return s.roomRepo.FindAvailable(ctx, checkIn, checkOut, roomType)
}

/* ---------- WRITE ---------- */

func (s *Service) Create(ctx context.Context, caller access.Caller, req CreateRoomRequest) (*domain.Room, error) {
	if !access.CanAccess(caller, access.Room, access.Create) {
		return nil, ErrForbidden
	}
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}

	number := strings.TrimSpace(req.RoomNumber)
	if err := s.ensureNumberFree(ctx, number, 0); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = domain.RoomAvailable
	}
	room := &domain.Room{
		RoomNumber:         number,
		Type:               req.Type,
		Capacity:           req.Capacity,
		PricePerNight:      domain.Round2(req.PricePerNight),
		Description:        req.Description,
		Status:             status,
		HasAirConditioning: req.HasAirConditioning,
		HasTV:              req.HasTV,
		HasMinibar:         req.HasMinibar,
		HasSafe:            req.HasSafe,
		HasWifi:            req.HasWifi,
		ImageURLs:          req.ImageURLs,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: room number %s already exists", ErrConflict, number)
		}
		return nil, err
	}

	s.loggerf("level=info msg=room created room_id=%d number=%s by_user=%d", room.ID, room.RoomNumber, caller.UserID)
	return room, nil
}

func (s *Service) Update(ctx context.Context, caller access.Caller, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	if !access.CanAccess(caller, access.Room, access.Update) {
		return nil, ErrForbidden
	}
	if fields := validator.Validate(req); fields != nil {
		return nil, invalid(fields)
	}

	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		number := strings.TrimSpace(*req.RoomNumber)
		if number != room.RoomNumber {
			if err := s.ensureNumberFree(ctx, number, room.ID); err != nil {
				return nil, err
			}
		}
		room.RoomNumber = number
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.PricePerNight != nil {
		room.PricePerNight = domain.Round2(*req.PricePerNight)
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Status != nil {
		room.Status = *req.Status
	}
	if req.HasAirConditioning != nil {
		room.HasAirConditioning = *req.HasAirConditioning
	}
	if req.HasTV != nil {
		room.HasTV = *req.HasTV
	}
	if req.HasMinibar != nil {
		room.HasMinibar = *req.HasMinibar
	}
	if req.HasSafe != nil {
		room.HasSafe = *req.HasSafe
	}
	if req.HasWifi != nil {
		room.HasWifi = *req.HasWifi
	}
	if req.ImageURLs != nil {
		room.ImageURLs = *req.ImageURLs
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: room number %s already exists", ErrConflict, room.RoomNumber)
		}
		return nil, err
	}
	return room, nil
}

// Delete removes a room that no reservation has ever referenced.
func (s *Service) Delete(ctx context.Context, caller access.Caller, id int64) error {
	if !access.CanAccess(caller, access.Room, access.Delete) {
		return ErrForbidden
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	referenced, err := s.roomRepo.HasReservations(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%w: room has reservations", ErrConflict)
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.loggerf("level=info msg=room deleted room_id=%d by_user=%d", id, caller.UserID)
	return nil
}

func (s *Service) ensureNumberFree(ctx context.Context, number string, excludeID int64) error {
	taken, err := s.roomRepo.ExistsByNumber(ctx, number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: room number %s already exists", ErrConflict, number)
	}
	return nil
}
