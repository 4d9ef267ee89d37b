package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nutrimcp/backend/internal/domain"
)

// LanguageService detects languages and manages per-user preferences
type LanguageService struct {
	store        domain.PreferenceStore
	preprocessor *QueryPreprocessor
	logger       zerolog.Logger
}

// NewLanguageService creates a language service backed by store
func NewLanguageService(store domain.PreferenceStore, logger zerolog.Logger) *LanguageService {
	return &LanguageService{
		store:        store,
		preprocessor: NewQueryPreprocessor(),
		logger:       logger.With().Str("component", "language").Logger(),
	}
}

// Detect guesses the language of text from food keywords
func (s *LanguageService) Detect(text string) domain.Language {
	return s.preprocessor.DetectLanguage(text)
}

// SetPreference stores the language of a user
func (s *LanguageService) SetPreference(ctx context.Context, userID, language string) (domain.Language, error) {
	if strings.TrimSpace(language) == "" {
		return "", fmt.Errorf("%w: language is required", domain.ErrInvalidInput)
	}
	lang, err := domain.ParseLanguage(language)
	if err != nil {
		return "", err
	}
	if err := s.store.SetLanguage(ctx, userID, lang); err != nil {
		return "", classify(err)
	}

	s.logger.Info().Str("user_id", userID).Str("language", string(lang)).Msg("language preference set")
	return lang, nil
}

// Preference returns the stored language of a user, or the default when none is stored.
func (s *LanguageService) Preference(ctx context.Context, userID string) (domain.Language, error) {
	lang, err := s.store.GetLanguage(ctx, userID)
	if errors.Is(err, domain.ErrPreferenceNotSet) {
		return domain.DefaultLanguage, nil
	}
	if err != nil {
		return "", classify(err)
	}
	return lang, nil
}

// Resolve picks the language of a request: the explicit value when given,
// then the stored preference of userID, then the default.
func (s *LanguageService) Resolve(ctx context.Context, explicit, userID string) (domain.Language, error) {
	if explicit != "" {
		return domain.ParseLanguage(explicit)
	}
	if userID == "" {
		return domain.DefaultLanguage, nil
	}

	lang, err := s.Preference(ctx, userID)
	if err != nil {
		// A broken store must not fail the request itself.
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to read language preference")
		return domain.DefaultLanguage, nil
	}
	return lang, nil
}
