package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Component identifies a nutrient (protein, sodium, ...). ID is stable across
// languages and is the only key used for merging and ordering; Name is for display.
type Component struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	Group     int    `json:"group,omitempty"`
	UnitID    int    `json:"unit,omitempty"`
	SortOrder int    `json:"sortorder,omitempty"`
}

// ComponentSet is a named grouping of components queried together (e.g. macronutrients)
type ComponentSet struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

// Magnitude is a measured value as delivered upstream, which may be numeric or textual.
type Magnitude struct {
	raw string
}

// NumericMagnitude builds a Magnitude from a number
func NumericMagnitude(v float64) Magnitude {
	return Magnitude{raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// TextMagnitude builds a Magnitude from its textual representation
func TextMagnitude(s string) Magnitude {
	return Magnitude{raw: s}
}

// Raw returns the magnitude exactly as received.
func (m Magnitude) Raw() string {
	return m.raw
}

// Float parses the magnitude. ok is false when the value is absent: empty,
// unparseable, NaN or infinite. Trailing text such as "12.5 g" makes the value
// unparseable; the BLV web app would read the numeric prefix instead.
func (m Magnitude) Float() (v float64, ok bool) {
	s := strings.TrimSpace(m.raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// MarshalJSON emits a number when the magnitude parses and the raw text otherwise.
func (m Magnitude) MarshalJSON() ([]byte, error) {
	if v, ok := m.Float(); ok {
		return json.Marshal(v)
	}
	return json.Marshal(m.raw)
}

// UnmarshalJSON accepts both `12.5` and `"12.5"`.
func (m *Magnitude) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		m.raw = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		m.raw = s
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	m.raw = n.String()
	return nil
}

// Unit is either a PlainUnit or a NamedUnit.
type Unit interface {
	unitDisplay() string
}

// PlainUnit is a unit delivered as a bare string ("g", "mg").
type PlainUnit string

func (u PlainUnit) unitDisplay() string { return string(u) }

// NamedUnit is a unit delivered as a structured object.
type NamedUnit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}

func (u NamedUnit) unitDisplay() string { return u.Name }

// ParseUnit decodes the string-or-object unit representation. A missing or
// null unit yields nil.
func ParseUnit(raw json.RawMessage) (Unit, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("invalid unit: %w", err)
		}
		return PlainUnit(s), nil
	}

	var u NamedUnit
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("invalid unit: %w", err)
	}
	return u, nil
}

// UnitDisplay returns the display string of any unit, "" for nil.
func UnitDisplay(u Unit) string {
	if u == nil {
		return ""
	}
	return u.unitDisplay()
}

// NutrientValue is one measured value of one component for one food
type NutrientValue struct {
	ID         int       `json:"id"`
	Component  Component `json:"component"`
	Magnitude  Magnitude `json:"value"`
	Unit       Unit      `json:"unit"`
	Minimum    string    `json:"minimum,omitempty"`
	Maximum    string    `json:"maximum,omitempty"`
	N          int       `json:"n,omitempty"`
	Derivation string    `json:"derivationOfValue,omitempty"`
}

// UnmarshalJSON decodes a value whose unit is either a string or an object.
func (v *NutrientValue) UnmarshalJSON(data []byte) error {
	type plain NutrientValue
	aux := struct {
		*plain
		Unit json.RawMessage `json:"unit"`
	}{plain: (*plain)(v)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	unit, err := ParseUnit(aux.Unit)
	if err != nil {
		return err
	}
	v.Unit = unit
	return nil
}

// UnitName is shorthand for UnitDisplay(v.Unit).
func (v NutrientValue) UnitName() string {
	return UnitDisplay(v.Unit)
}

// Ingredient is a caller supplied recipe line. Amount is expressed in the
// reference basis of the upstream values (grams for per-100g values); Unit is
// carried to the output only.
type Ingredient struct {
	FoodID int     `json:"foodId"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// IngredientDetail is a resolved ingredient
type IngredientDetail struct {
	Name              string          `json:"name"`
	Amount            float64         `json:"amount"`
	Unit              string          `json:"unit"`
	NutritionalValues []NutrientValue `json:"nutritionalValues"`
}

// TotalsEntry is one row of a recipe's totals table
type TotalsEntry struct {
	Component      Component `json:"component"`
	Value          float64   `json:"value"`
	FormattedValue string    `json:"formattedValue"`
	Unit           string    `json:"unit"`
}

// RecipeNutrition is the result of aggregating a list of ingredients
type RecipeNutrition struct {
	Ingredients []IngredientDetail `json:"ingredients"`
	TotalValues []TotalsEntry      `json:"totalValues"`
}

// ComparisonCell is one food's value for one component in a comparison table
type ComparisonCell struct {
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formattedValue"`
}

// ComparisonRow holds every compared food's value for a single component, in food order.
type ComparisonRow struct {
	Component Component        `json:"component"`
	Values    []ComparisonCell `json:"values"`
}

// NutritionComparison is the result of comparing several foods
type NutritionComparison struct {
	Foods []Food          `json:"foods"`
	Rows  []ComparisonRow `json:"comparisonTable"`
}
