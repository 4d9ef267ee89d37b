package preferences

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nutrimcp/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory language preference store
type MemoryStore struct {
	data  map[string]domain.Language
	mutex sync.RWMutex
}

var _ domain.PreferenceStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]domain.Language),
	}
}

// GetLanguage returns the stored language of userID
func (s *MemoryStore) GetLanguage(ctx context.Context, userID string) (domain.Language, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	lang, ok := s.data[strings.TrimSpace(userID)]
	if !ok {
		return "", domain.ErrPreferenceNotSet
	}
	return lang, nil
}

// SetLanguage stores lang for userID, replacing any previous choice
func (s *MemoryStore) SetLanguage(ctx context.Context, userID string, lang domain.Language) error {
	if err := validate(userID, lang); err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[strings.TrimSpace(userID)] = lang
	return nil
}

// Size returns the number of stored preferences
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}

func validate(userID string, lang domain.Language) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if !lang.IsSupported() {
		return fmt.Errorf("%w: unsupported language %q", domain.ErrInvalidInput, lang)
	}
	return nil
}
