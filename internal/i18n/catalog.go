// Package i18n holds the static translation table and locale aware formatting.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/nutrimcp/backend/internal/domain"
)

// maxFractionDigits mirrors the default precision of the upstream web app
const maxFractionDigits = 3

var locales = map[domain.Language]language.Tag{
	domain.LanguageEnglish: language.MustParse("en-US"),
	domain.LanguageGerman:  language.MustParse("de-CH"),
	domain.LanguageFrench:  language.MustParse("fr-CH"),
	domain.LanguageItalian: language.MustParse("it-CH"),
}

// Catalog implements domain.Localizer over the built-in translation table.
type Catalog struct {
	printers map[domain.Language]*message.Printer
}

// NewCatalog creates a catalog with one printer per supported language
func NewCatalog() *Catalog {
	printers := make(map[domain.Language]*message.Printer, len(locales))
	for lang, tag := range locales {
		printers[lang] = message.NewPrinter(tag)
	}
	return &Catalog{printers: printers}
}

// Translate returns the message for key in lang, falling back to English,
// then to the key itself.
func (c *Catalog) Translate(key string, lang domain.Language) string {
	e, ok := translations[key]
	if !ok {
		return key
	}
	if s, ok := e[lang]; ok {
		return s
	}
	return e[domain.DefaultLanguage]
}

// FormatNumber formats value with the number conventions of lang's Swiss locale.
func (c *Catalog) FormatNumber(value float64, lang domain.Language) string {
	p, ok := c.printers[lang]
	if !ok {
		p = c.printers[domain.DefaultLanguage]
	}
	return p.Sprint(number.Decimal(value, number.MaxFractionDigits(maxFractionDigits)))
}

// FormatValueWithUnit formats a value followed by its unit, translating the
// unit when the table knows it.
func (c *Catalog) FormatValueWithUnit(value float64, unit string, lang domain.Language) string {
	key := "unit." + strings.ToLower(unit)
	if _, ok := translations[key]; ok {
		unit = c.Translate(key, lang)
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", c.FormatNumber(value, lang), unit))
}
