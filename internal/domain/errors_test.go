package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	assert.Equal(t, KindInvalidInput, Kind(fmt.Errorf("%w: empty", ErrInvalidInput)))
	assert.Equal(t, KindNotFound, Kind(fmt.Errorf("wrapped: %w", ErrNotFound)))
	assert.Equal(t, KindUpstream, Kind(ErrUpstream))
	assert.Equal(t, KindUpstream, Kind(errors.New("connection reset")))
}

func TestIngredientError(t *testing.T) {
	cause := fmt.Errorf("%w: no values", ErrNotFound)
	err := error(&IngredientError{Index: 2, FoodID: 42, Err: cause})

	assert.Equal(t, "error processing ingredient 2 (food 42): not found: no values", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, KindNotFound, Kind(err))

	var ingErr *IngredientError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", err), &ingErr))
	assert.Equal(t, 42, ingErr.FoodID)
}
