package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nutrimcp/backend/internal/domain"
)

func TestTranslate(t *testing.T) {
	c := NewCatalog()

	tests := []struct {
		name string
		key  string
		lang domain.Language
		want string
	}{
		{"english", KeyErrorNotFound, domain.LanguageEnglish, "Food not found"},
		{"german", KeyErrorNotFound, domain.LanguageGerman, "Lebensmittel nicht gefunden"},
		{"italian nutrient", "nutrient.sodium", domain.LanguageItalian, "Sodio"},
		{"unknown language falls back to english", "nutrient.fat", domain.Language("es"), "Fat"},
		{"unknown key is returned as is", "does.not.exist", domain.LanguageFrench, "does.not.exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Translate(tt.key, tt.lang))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	c := NewCatalog()

	assert.Equal(t, "30", c.FormatNumber(30, domain.LanguageEnglish))
	assert.Equal(t, "1,234.568", c.FormatNumber(1234.5678, domain.LanguageEnglish))
	assert.Equal(t, "0.5", c.FormatNumber(0.5, domain.LanguageEnglish))
	assert.NotEmpty(t, c.FormatNumber(1234.5, domain.LanguageGerman))
}

func TestFormatValueWithUnit(t *testing.T) {
	c := NewCatalog()

	t.Run("keeps unknown units", func(t *testing.T) {
		assert.Equal(t, "30 g", c.FormatValueWithUnit(30, "g", domain.LanguageEnglish))
	})

	t.Run("translates known units", func(t *testing.T) {
		assert.Equal(t, "2 Gramm", c.FormatValueWithUnit(2, "gram", domain.LanguageGerman))
		assert.Equal(t, "2 milligrammo", c.FormatValueWithUnit(2, "Milligram", domain.LanguageItalian))
	})

	t.Run("empty unit", func(t *testing.T) {
		assert.Equal(t, "12.5", c.FormatValueWithUnit(12.5, "", domain.LanguageEnglish))
	})
}
