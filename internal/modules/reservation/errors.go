package reservation

import (
	"errors"
	"fmt"

	"hotel/internal/pkg/validator"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("reservation not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("room is not available for the selected dates")
	ErrInvalidTransition = errors.New("invalid status transition")
)

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}
