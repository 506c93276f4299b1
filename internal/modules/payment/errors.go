package payment

import (
	"errors"
	"fmt"

	"hotel/internal/pkg/validator"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("payment not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrForbidden           = errors.New("forbidden")
	// ErrRoomConflict means confirming the reservation would overlap another
	// live reservation of its room.
	ErrRoomConflict        = errors.New("reservation dates clash with another reservation of the room")
)

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}
