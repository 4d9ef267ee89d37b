package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for malformed or empty caller input
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when the nutrition database has no data for an identifier
	ErrNotFound = errors.New("not found")

	// ErrUpstream is returned when the nutrition database request fails
	ErrUpstream = errors.New("upstream error")

	// ErrPreferenceNotSet is returned by a PreferenceStore for unknown users
	ErrPreferenceNotSet = errors.New("language preference not set")
)

// ErrorKind classifies an error for presentation to protocol clients.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "InvalidInput"
	KindNotFound     ErrorKind = "NotFound"
	KindUpstream     ErrorKind = "UpstreamError"
)

// Kind returns the class of err. Anything that is neither invalid input nor
// not found is reported as an upstream error.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindUpstream
	}
}

// IngredientError identifies the recipe ingredient whose resolution failed.
type IngredientError struct {
	Index  int
	FoodID int
	Err    error
}

func (e *IngredientError) Error() string {
	return fmt.Sprintf("error processing ingredient %d (food %d): %v", e.Index, e.FoodID, e.Err)
}

func (e *IngredientError) Unwrap() error {
	return e.Err
}
