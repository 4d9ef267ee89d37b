package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/nutrimcp/backend/internal/domain"
)

// fakeSource is an in-memory domain.NutritionDataSource
type fakeSource struct {
	mu        sync.Mutex
	foods     map[int]*domain.Food
	values    map[int][]domain.NutrientValue
	recipes   map[int][]domain.RecipeIngredient
	languages []domain.Language
}

func newFakeSource() *fakeSource {
	f := &fakeSource{
		foods:   make(map[int]*domain.Food),
		values:  make(map[int][]domain.NutrientValue),
		recipes: make(map[int][]domain.RecipeIngredient),
	}
	f.addFood(1, "Chicken", 10)
	f.addFood(2, "Lentils", 20)
	f.foods[50] = &domain.Food{ID: 50, Name: "Dal", IsRecipe: true}
	f.recipes[50] = []domain.RecipeIngredient{
		{Food: domain.IngredientFood{ID: 1, Name: "Chicken"}, Amount: 200, Unit: "g"},
		{Food: domain.IngredientFood{ID: 2, Name: "Lentils"}, Amount: 50, Unit: "g"},
	}
	return f
}

func (f *fakeSource) addFood(id int, name string, protein float64) {
	f.foods[id] = &domain.Food{ID: id, Name: name}
	f.values[id] = []domain.NutrientValue{{
		Component: domain.Component{ID: 10, Name: "Protein"},
		Magnitude: domain.NumericMagnitude(protein),
		Unit:      domain.PlainUnit("g"),
	}}
}

func (f *fakeSource) seen(lang domain.Language) {
	f.mu.Lock()
	f.languages = append(f.languages, lang)
	f.mu.Unlock()
}

func (f *fakeSource) lastLanguage() domain.Language {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.languages) == 0 {
		return ""
	}
	return f.languages[len(f.languages)-1]
}

func (f *fakeSource) ListComponentSets(ctx context.Context, lang domain.Language) ([]domain.ComponentSet, error) {
	f.seen(lang)
	return []domain.ComponentSet{{ID: 1, Name: "Main components"}}, nil
}

func (f *fakeSource) ListComponents(ctx context.Context, lang domain.Language) ([]domain.Component, error) {
	return []domain.Component{{ID: 10, Name: "Protein"}}, nil
}

func (f *fakeSource) TranslateFoodIdentifier(ctx context.Context, publicID int) (int, error) {
	return 0, fmt.Errorf("%w: %d", domain.ErrNotFound, publicID)
}

func (f *fakeSource) GetFood(ctx context.Context, dbid int, lang domain.Language) (*domain.Food, error) {
	f.seen(lang)
	food, ok := f.foods[dbid]
	if !ok {
		return nil, fmt.Errorf("%w: food %d", domain.ErrNotFound, dbid)
	}
	return food, nil
}

func (f *fakeSource) GetNutrientValues(ctx context.Context, dbid, componentSetID int, lang domain.Language) ([]domain.NutrientValue, error) {
	return f.values[dbid], nil
}

func (f *fakeSource) GetIngredients(ctx context.Context, dbid int, lang domain.Language) ([]domain.RecipeIngredient, error) {
	return f.recipes[dbid], nil
}

func (f *fakeSource) SearchFoods(ctx context.Context, req domain.SearchRequest) ([]domain.FoodSummary, error) {
	f.seen(req.Language)
	var hits []domain.FoodSummary
	for id, food := range f.foods {
		if food.Name == req.Query {
			hits = append(hits, domain.FoodSummary{ID: id, Names: []domain.FoodName{{ID: id, Term: food.Name}}})
		}
	}
	return hits, nil
}

func (f *fakeSource) CategorizedFoods(ctx context.Context, req domain.SearchRequest) ([]domain.CategoryCount, error) {
	return nil, nil
}

func (f *fakeSource) TopCategories(ctx context.Context, lang domain.Language) ([]domain.TopCategory, error) {
	return nil, nil
}

func (f *fakeSource) Subcategories(ctx context.Context, categoryID int, lang domain.Language) ([]domain.Category, error) {
	return []domain.Category{{ID: categoryID*10 + 1, Name: "Sub"}}, nil
}
