package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/nutrimcp/backend/internal/domain"
)

// MockDataSource is a mock implementation of domain.NutritionDataSource
type MockDataSource struct {
	mu sync.Mutex

	sets         []domain.ComponentSet
	setsError    error
	components   []domain.Component
	translations map[int]int
	foods        map[int]*domain.Food
	foodErrors   map[int]error
	values       map[int][]domain.NutrientValue
	valueErrors  map[int]error
	ingredients  map[int][]domain.RecipeIngredient
	searchResult []domain.FoodSummary
	searchError  error
	lastSearch   domain.SearchRequest
	counts       []domain.CategoryCount
	subcategory  map[int][]domain.Category

	calls      int
	valueCalls map[int]int
}

func NewMockDataSource() *MockDataSource {
	return &MockDataSource{
		sets:         []domain.ComponentSet{{ID: 1, Name: "Main components"}},
		translations: make(map[int]int),
		foods:        make(map[int]*domain.Food),
		foodErrors:   make(map[int]error),
		values:       make(map[int][]domain.NutrientValue),
		valueErrors:  make(map[int]error),
		ingredients:  make(map[int][]domain.RecipeIngredient),
		subcategory:  make(map[int][]domain.Category),
		valueCalls:   make(map[int]int),
	}
}

// addFood registers a food with its values under dbid.
func (m *MockDataSource) addFood(dbid int, name string, values ...domain.NutrientValue) {
	m.foods[dbid] = &domain.Food{ID: dbid, Name: name}
	m.values[dbid] = values
}

func (m *MockDataSource) record() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *MockDataSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockDataSource) ListComponentSets(ctx context.Context, lang domain.Language) ([]domain.ComponentSet, error) {
	m.record()
	if m.setsError != nil {
		return nil, m.setsError
	}
	return m.sets, nil
}

func (m *MockDataSource) ListComponents(ctx context.Context, lang domain.Language) ([]domain.Component, error) {
	m.record()
	return m.components, nil
}

func (m *MockDataSource) TranslateFoodIdentifier(ctx context.Context, publicID int) (int, error) {
	m.record()
	if dbid, ok := m.translations[publicID]; ok {
		return dbid, nil
	}
	return 0, fmt.Errorf("%w: food identifier %d", domain.ErrNotFound, publicID)
}

func (m *MockDataSource) GetFood(ctx context.Context, dbid int, lang domain.Language) (*domain.Food, error) {
	m.record()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.foodErrors[dbid]; ok {
		return nil, err
	}
	food, ok := m.foods[dbid]
	if !ok {
		return nil, fmt.Errorf("%w: food %d", domain.ErrNotFound, dbid)
	}
	return food, nil
}

func (m *MockDataSource) GetNutrientValues(ctx context.Context, dbid, componentSetID int, lang domain.Language) ([]domain.NutrientValue, error) {
	m.record()
	m.mu.Lock()
	m.valueCalls[dbid]++
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.valueErrors[dbid]; ok {
		return nil, err
	}
	return m.values[dbid], nil
}

func (m *MockDataSource) GetIngredients(ctx context.Context, dbid int, lang domain.Language) ([]domain.RecipeIngredient, error) {
	m.record()
	return m.ingredients[dbid], nil
}

func (m *MockDataSource) SearchFoods(ctx context.Context, req domain.SearchRequest) ([]domain.FoodSummary, error) {
	m.record()
	m.lastSearch = req
	if m.searchError != nil {
		return nil, m.searchError
	}
	return m.searchResult, nil
}

func (m *MockDataSource) CategorizedFoods(ctx context.Context, req domain.SearchRequest) ([]domain.CategoryCount, error) {
	m.record()
	m.lastSearch = req
	return m.counts, nil
}

func (m *MockDataSource) TopCategories(ctx context.Context, lang domain.Language) ([]domain.TopCategory, error) {
	m.record()
	return []domain.TopCategory{{Letter: "A", Description: "Fruit"}}, nil
}

func (m *MockDataSource) Subcategories(ctx context.Context, categoryID int, lang domain.Language) ([]domain.Category, error) {
	m.record()
	categories, ok := m.subcategory[categoryID]
	if !ok {
		return nil, fmt.Errorf("%w: category %d", domain.ErrNotFound, categoryID)
	}
	return categories, nil
}

// MockPreferenceStore is a mock implementation of domain.PreferenceStore
type MockPreferenceStore struct {
	data     map[string]domain.Language
	getError error
	setError error
}

func NewMockPreferenceStore() *MockPreferenceStore {
	return &MockPreferenceStore{data: make(map[string]domain.Language)}
}

func (m *MockPreferenceStore) GetLanguage(ctx context.Context, userID string) (domain.Language, error) {
	if m.getError != nil {
		return "", m.getError
	}
	lang, ok := m.data[userID]
	if !ok {
		return "", domain.ErrPreferenceNotSet
	}
	return lang, nil
}

func (m *MockPreferenceStore) SetLanguage(ctx context.Context, userID string, lang domain.Language) error {
	if m.setError != nil {
		return m.setError
	}
	m.data[userID] = lang
	return nil
}

// value builds a per-100g nutrient value with a plain unit.
func value(componentID int, name string, magnitude float64, unit string) domain.NutrientValue {
	return domain.NutrientValue{
		Component: domain.Component{ID: componentID, Name: name},
		Magnitude: domain.NumericMagnitude(magnitude),
		Unit:      domain.PlainUnit(unit),
	}
}
