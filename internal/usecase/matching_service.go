package usecase

import (
	"context"
	"regexp"
	"slices"
	"strings"

	"github.com/nutrimcp/backend/internal/domain"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

// Score weights
const (
	queryCoverageWeight = 0.60 // share of query tokens found in the name
	nameCoverageWeight  = 0.20 // share of name tokens found in the query
	jaccardWeight       = 0.20
	substringBonus      = 10.0 // query is a substring of the name or vice versa
	fuzzyWeightFactor   = 0.8  // fuzzy matches count for 80% of an exact match
)

// stopWords are articles and fillers in the supported languages
var stopWords = map[string]bool{
	// English
	"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
	"in": true, "with": true, "without": true,
	// German
	"der": true, "die": true, "das": true, "und": true, "mit": true, "ohne": true,
	// French
	"le": true, "la": true, "les": true, "de": true, "du": true, "des": true,
	"et": true, "au": true, "aux": true, "avec": true, "sans": true,
	// Italian
	"il": true, "lo": true, "di": true, "del": true, "della": true, "con": true,
	"senza": true,
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableFuzzyMatching bool
	FuzzyEditDistance   int
}

// MatchingService ranks search hits by how well their names match the query
type MatchingService struct {
	enableFuzzyMatching bool
	fuzzyEditDistance   int
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	fuzzyDist := config.FuzzyEditDistance
	if fuzzyDist <= 0 {
		fuzzyDist = 1 // Default edit distance of 1
	}

	return &MatchingService{
		enableFuzzyMatching: config.EnableFuzzyMatching,
		fuzzyEditDistance:   fuzzyDist,
	}
}

// Rank orders foods by descending match score against query. Foods with equal
// scores keep their upstream order.
func (s *MatchingService) Rank(ctx context.Context, query string, foods []domain.FoodSummary) ([]domain.FoodSummary, error) {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || len(foods) < 2 {
		return foods, nil
	}

	type scored struct {
		food  domain.FoodSummary
		score float64
	}
	ranked := make([]scored, len(foods))
	for i, food := range foods {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		ranked[i] = scored{food: food, score: s.bestScore(query, queryTokens, food)}
	}

	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return 0
		}
	})

	out := make([]domain.FoodSummary, len(ranked))
	for i, r := range ranked {
		out[i] = r.food
	}
	return out, nil
}

// bestScore is the highest score over a food's names and synonyms.
func (s *MatchingService) bestScore(query string, queryTokens []string, food domain.FoodSummary) float64 {
	best := 0.0
	for _, name := range food.Names {
		best = max(best, s.calculateMatchScore(query, queryTokens, name.Term))
	}
	for _, synonym := range food.Synonyms {
		best = max(best, s.calculateMatchScore(query, queryTokens, synonym.Term))
	}
	return best
}

// calculateMatchScore computes a 0-100 similarity between query and name from
// query coverage, name coverage, Jaccard similarity and a substring bonus.
func (s *MatchingService) calculateMatchScore(query string, queryTokens []string, name string) float64 {
	nameTokens := tokenize(name)
	if len(nameTokens) == 0 {
		return 0
	}

	queryMatched := s.countMatches(queryTokens, nameTokens)
	queryCoverage := queryMatched / float64(len(queryTokens))
	nameCoverage := s.countMatches(nameTokens, queryTokens) / float64(len(nameTokens))
	jaccard := queryMatched / float64(findUnion(queryTokens, nameTokens))

	score := (queryCoverage*queryCoverageWeight + nameCoverage*nameCoverageWeight + jaccard*jaccardWeight) * 100

	queryLower := strings.ToLower(strings.TrimSpace(query))
	nameLower := strings.ToLower(name)
	if len(queryLower) > 3 && (strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower)) {
		score += substringBonus
	}

	return min(score, 100)
}

// countMatches counts the tokens of a found in b. Fuzzy matches count partially.
func (s *MatchingService) countMatches(a, b []string) float64 {
	exact := findIntersection(b, a)
	matched := float64(exact)
	if !s.enableFuzzyMatching {
		return matched
	}

	set := make(map[string]bool, len(b))
	for _, t := range b {
		set[t] = true
	}
	seen := make(map[string]bool)
	for _, t := range a {
		if set[t] || seen[t] {
			continue
		}
		seen[t] = true
		for _, candidate := range b {
			if fuzzyTokenMatch(t, candidate, s.fuzzyEditDistance) {
				matched += fuzzyWeightFactor
				break
			}
		}
	}
	return matched
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words and pure numeric tokens.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) <= 1 || stopWords[word] || isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fuzzyTokenMatch checks if two tokens are similar within the edit distance threshold
func fuzzyTokenMatch(token1, token2 string, threshold int) bool {
	if token1 == token2 {
		return true
	}

	r1, r2 := []rune(token1), []rune(token2)

	// Only apply fuzzy matching to tokens of 4+ chars to avoid false positives
	if len(r1) < 4 || len(r2) < 4 {
		return false
	}

	lenDiff := len(r1) - len(r2)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	if lenDiff > threshold {
		return false
	}

	return levenshteinDistance(token1, token2) <= threshold
}

// levenshteinDistance calculates the edit distance between two strings
func levenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	if m == 0 {
		return n
	}
	if n == 0 {
		return m
	}

	// Use two rows instead of full matrix for space efficiency
	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= m; i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

// findIntersection returns the number of distinct tokens present in both sets
func findIntersection(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}

	count := 0
	seen := make(map[string]bool)
	for _, t := range tokens2 {
		if set[t] && !seen[t] {
			count++
			seen[t] = true
		}
	}
	return count
}

// findUnion returns the count of unique tokens across both sets
func findUnion(tokens1, tokens2 []string) int {
	set := make(map[string]bool)
	for _, t := range tokens1 {
		set[t] = true
	}
	for _, t := range tokens2 {
		set[t] = true
	}
	return len(set)
}
