package blv

import (
	"encoding/json"
	"fmt"

	"github.com/nutrimcp/backend/internal/domain"
)

// valueDTO is a nutrient value as returned by /values. value, minimum and
// maximum arrive either as numbers or as text; unit is either a string or an object.
type valueDTO struct {
	ID                int              `json:"id"`
	Value             domain.Magnitude `json:"value"`
	Component         domain.Component `json:"component"`
	Unit              json.RawMessage  `json:"unit"`
	Minimum           domain.Magnitude `json:"minimum"`
	Maximum           domain.Magnitude `json:"maximum"`
	N                 int              `json:"n"`
	DerivationOfValue string           `json:"derivationOfValue"`
}

// mapValues converts wire values to domain values, preserving order
func mapValues(dtos []valueDTO) ([]domain.NutrientValue, error) {
	values := make([]domain.NutrientValue, 0, len(dtos))
	for _, dto := range dtos {
		unit, err := domain.ParseUnit(dto.Unit)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", dto.ID, err)
		}
		values = append(values, domain.NutrientValue{
			ID:         dto.ID,
			Component:  dto.Component,
			Magnitude:  dto.Value,
			Unit:       unit,
			Minimum:    dto.Minimum.Raw(),
			Maximum:    dto.Maximum.Raw(),
			N:          dto.N,
			Derivation: dto.DerivationOfValue,
		})
	}
	return values, nil
}
