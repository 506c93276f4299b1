package message

import (
	"errors"
	"fmt"

	"hotel/internal/pkg/validator"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("message not found")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrForbidden         = errors.New("forbidden")
)

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}
