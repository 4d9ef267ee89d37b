package usecase

import (
	"regexp"
	"strings"

	"github.com/nutrimcp/backend/internal/domain"
)

// maxQueryLength bounds search queries sent upstream.
const maxQueryLength = 100

var multiSpacePattern = regexp.MustCompile(`\s+`)

// keywords maps each non-default language to food words characteristic of it.
// Matching is by substring on the lowercased text.
var keywords = map[domain.Language][]string{
	domain.LanguageGerman:  {"apfel", "brot", "milch", "käse", "wasser", "zucker", "salz", "gemüse", "obst"},
	domain.LanguageFrench:  {"pomme", "pain", "lait", "fromage", "eau", "sucre", "sel", "légume", "fruit"},
	domain.LanguageItalian: {"mela", "pane", "latte", "formaggio", "acqua", "zucchero", "sale", "verdura", "frutta"},
}

// QueryPreprocessor cleans search queries and guesses their language
type QueryPreprocessor struct{}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor() *QueryPreprocessor {
	return &QueryPreprocessor{}
}

// PreprocessQuery normalizes whitespace and caps the query length, cutting at
// a word boundary when one is close enough.
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	cleaned := multiSpacePattern.ReplaceAllString(query, " ")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) > maxQueryLength {
		cleaned = cleaned[:maxQueryLength]
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
		cleaned = strings.ToValidUTF8(cleaned, "")
	}

	return cleaned
}

// DetectLanguage counts keyword hits per language. A language wins only with a
// strictly higher count than both others; otherwise the default is returned.
func (p *QueryPreprocessor) DetectLanguage(text string) domain.Language {
	normalized := strings.ToLower(text)

	counts := make(map[domain.Language]int, len(keywords))
	for lang, words := range keywords {
		for _, word := range words {
			if strings.Contains(normalized, word) {
				counts[lang]++
			}
		}
	}

	for lang, count := range counts {
		winner := count > 0
		for other, otherCount := range counts {
			if other != lang && otherCount >= count {
				winner = false
				break
			}
		}
		if winner {
			return lang
		}
	}
	return domain.DefaultLanguage
}
