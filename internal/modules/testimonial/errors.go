package testimonial

import (
	"errors"
	"fmt"

	"hotel/internal/pkg/validator"
)

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("testimonial not found")
)

func invalid(fields validator.Errors) error {
	return fmt.Errorf("%w: %w", ErrValidation, fields)
}
