package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrimcp/backend/internal/domain"
)

func TestSetPreference(t *testing.T) {
	store := NewMockPreferenceStore()
	service := NewLanguageService(store, zerolog.Nop())

	lang, err := service.SetPreference(context.Background(), "user-1", "FR")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageFrench, lang)
	assert.Equal(t, domain.LanguageFrench, store.data["user-1"])

	_, err = service.SetPreference(context.Background(), "user-1", "es")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.SetPreference(context.Background(), "user-1", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPreference(t *testing.T) {
	store := NewMockPreferenceStore()
	store.data["user-1"] = domain.LanguageItalian
	service := NewLanguageService(store, zerolog.Nop())

	lang, err := service.Preference(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LanguageItalian, lang)

	lang, err = service.Preference(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, lang)
}

func TestResolveLanguage(t *testing.T) {
	store := NewMockPreferenceStore()
	store.data["user-1"] = domain.LanguageGerman
	service := NewLanguageService(store, zerolog.Nop())
	ctx := context.Background()

	testCases := []struct {
		name     string
		explicit string
		userID   string
		want     domain.Language
	}{
		{name: "explicit wins over preference", explicit: "it", userID: "user-1", want: domain.LanguageItalian},
		{name: "stored preference", userID: "user-1", want: domain.LanguageGerman},
		{name: "unknown user", userID: "user-2", want: domain.DefaultLanguage},
		{name: "no user", want: domain.DefaultLanguage},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := service.Resolve(ctx, tc.explicit, tc.userID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := service.Resolve(ctx, "xx", "user-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveLanguage_StoreFailure(t *testing.T) {
	store := NewMockPreferenceStore()
	store.getError = errors.New("database is locked")
	service := NewLanguageService(store, zerolog.Nop())

	lang, err := service.Resolve(context.Background(), "", "user-1")

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLanguage, lang)
}

func TestDetect(t *testing.T) {
	service := NewLanguageService(NewMockPreferenceStore(), zerolog.Nop())

	assert.Equal(t, domain.LanguageGerman, service.Detect("Milch und Zucker"))
	assert.Equal(t, domain.LanguageEnglish, service.Detect("rice"))
}
