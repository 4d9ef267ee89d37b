package usecase

import (
	"errors"
	"fmt"

	"github.com/nutrimcp/backend/internal/domain"
)

// classify keeps classified errors as they are and wraps anything else as an
// upstream failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidInput) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrUpstream) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrUpstream, err)
}
