package domain

import (
	"fmt"
	"strings"
)

// Language is a supported content language
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageGerman  Language = "de"
	LanguageFrench  Language = "fr"
	LanguageItalian Language = "it"

	DefaultLanguage = LanguageEnglish
)

// SupportedLanguages lists every language the upstream database serves
var SupportedLanguages = []Language{LanguageEnglish, LanguageGerman, LanguageFrench, LanguageItalian}

// IsSupported reports whether l is one of SupportedLanguages
func (l Language) IsSupported() bool {
	for _, s := range SupportedLanguages {
		if l == s {
			return true
		}
	}
	return false
}

// ParseLanguage validates a language tag. An empty tag yields DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage, nil
	}
	l := Language(s)
	if !l.IsSupported() {
		return "", fmt.Errorf("%w: unsupported language %q, supported languages are: %s",
			ErrInvalidInput, s, joinLanguages(SupportedLanguages))
	}
	return l, nil
}

func joinLanguages(langs []Language) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = string(l)
	}
	return strings.Join(parts, ", ")
}
