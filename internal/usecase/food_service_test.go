package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrimcp/backend/internal/domain"
	"github.com/nutrimcp/backend/internal/i18n"
)

func newTestFoodService(ds *MockDataSource) *FoodService {
	resolver := NewNutrientResolver(ds, zerolog.Nop())
	catalog := i18n.NewCatalog()
	aggregator := NewRecipeAggregator(ds, resolver, catalog, RecipeAggregatorConfig{}, zerolog.Nop())
	return NewFoodService(ds, resolver, aggregator, NewMatchingService(MatchConfig{}), catalog, zerolog.Nop())
}

func TestSearchFoods(t *testing.T) {
	t.Run("normalizes the query", func(t *testing.T) {
		ds := NewMockDataSource()
		ds.searchResult = []domain.FoodSummary{{ID: 1, Names: []domain.FoodName{{Term: "Apple"}}}}
		service := newTestFoodService(ds)

		foods, err := service.SearchFoods(context.Background(), domain.SearchRequest{
			Query:    "  green   apple ",
			Language: domain.LanguageEnglish,
		})

		require.NoError(t, err)
		assert.Len(t, foods, 1)
		assert.Equal(t, "green apple", ds.lastSearch.Query)
	})

	t.Run("ranks hits by name", func(t *testing.T) {
		ds := NewMockDataSource()
		ds.searchResult = []domain.FoodSummary{
			{ID: 1, Names: []domain.FoodName{{Term: "Apple pie"}}},
			{ID: 2, Names: []domain.FoodName{{Term: "Green apple"}}},
		}
		service := newTestFoodService(ds)

		foods, err := service.SearchFoods(context.Background(), domain.SearchRequest{Query: "green apple"})

		require.NoError(t, err)
		require.Len(t, foods, 2)
		assert.Equal(t, 2, foods[0].ID)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		ds := NewMockDataSource()
		service := newTestFoodService(ds)

		_, err := service.SearchFoods(context.Background(), domain.SearchRequest{Query: "   "})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, ds.callCount())
	})

	t.Run("upstream failure", func(t *testing.T) {
		ds := NewMockDataSource()
		ds.searchError = errors.New("boom")
		service := newTestFoodService(ds)

		_, err := service.SearchFoods(context.Background(), domain.SearchRequest{Query: "apple"})

		assert.ErrorIs(t, err, domain.ErrUpstream)
	})
}

func TestFoodDetails(t *testing.T) {
	ds := NewMockDataSource()
	ds.translations[340] = 7
	ds.addFood(7, "Apple")
	service := newTestFoodService(ds)

	food, err := service.FoodDetails(context.Background(), 340, domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Apple", food.Name)

	_, err = service.FoodDetails(context.Background(), 5, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.FoodDetails(context.Background(), 0, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategory(t *testing.T) {
	ds := NewMockDataSource()
	ds.subcategory[3] = []domain.Category{{ID: 31, Name: "Apples"}}
	service := newTestFoodService(ds)

	overview, err := service.Category(context.Background(), 3, domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, 3, overview.ID)
	assert.Len(t, overview.Subcategories, 1)

	_, err = service.Category(context.Background(), 4, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNutritionalValues_DefaultsComponentSet(t *testing.T) {
	ds := NewMockDataSource()
	ds.sets = []domain.ComponentSet{{ID: 4}}
	ds.addFood(7, "Apple", value(10, "Protein", 0.3, "g"))
	service := newTestFoodService(ds)

	values, err := service.NutritionalValues(context.Background(), 7, 0, domain.LanguageEnglish)

	require.NoError(t, err)
	assert.Len(t, values, 1)

	_, err = service.NutritionalValues(context.Background(), 7, -1, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompareFoods(t *testing.T) {
	ds := NewMockDataSource()
	ds.addFood(1, "Apple", value(10, "Protein", 0.3, "g"), value(12, "Fat", 0.1, "g"))
	ds.addFood(2, "Pear", value(12, "Fat", 0.2, "g"), value(5, "Energy", 50, "kcal"))
	service := newTestFoodService(ds)

	comparison, err := service.CompareFoods(context.Background(), []int{1, 2}, 1, domain.LanguageEnglish)

	require.NoError(t, err)
	require.Len(t, comparison.Foods, 2)
	assert.Equal(t, "Apple", comparison.Foods[0].Name)
	assert.Equal(t, "Pear", comparison.Foods[1].Name)

	require.Len(t, comparison.Rows, 3)
	assert.Equal(t, 5, comparison.Rows[0].Component.ID)
	assert.Equal(t, missingValue, comparison.Rows[0].Values[0].FormattedValue)
	assert.Equal(t, "50 kcal", comparison.Rows[0].Values[1].FormattedValue)

	assert.Equal(t, 10, comparison.Rows[1].Component.ID)
	assert.Equal(t, "0.3 g", comparison.Rows[1].Values[0].FormattedValue)
	assert.Equal(t, missingValue, comparison.Rows[1].Values[1].FormattedValue)

	assert.Equal(t, 12, comparison.Rows[2].Component.ID)
	assert.InDelta(t, 0.1, comparison.Rows[2].Values[0].Value, 1e-9)
	assert.InDelta(t, 0.2, comparison.Rows[2].Values[1].Value, 1e-9)
}

func TestCompareFoods_Errors(t *testing.T) {
	ds := NewMockDataSource()
	ds.addFood(1, "Apple", value(10, "Protein", 0.3, "g"))
	service := newTestFoodService(ds)

	_, err := service.CompareFoods(context.Background(), []int{1}, 1, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.CompareFoods(context.Background(), []int{1, 2}, 1, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeIngredients(t *testing.T) {
	ds := NewMockDataSource()
	ds.ingredients[50] = []domain.RecipeIngredient{{Food: domain.IngredientFood{ID: 1, Name: "Flour"}, Amount: 500, Unit: "g"}}
	service := newTestFoodService(ds)

	ingredients, err := service.RecipeIngredients(context.Background(), 50, domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Len(t, ingredients, 1)

	_, err = service.RecipeIngredients(context.Background(), 51, domain.LanguageEnglish)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecipeDetails(t *testing.T) {
	ds := NewMockDataSource()
	ds.foods[50] = &domain.Food{ID: 50, Name: "Bread", IsRecipe: true}
	ds.foods[7] = &domain.Food{ID: 7, Name: "Apple"}
	service := newTestFoodService(ds)

	recipe, err := service.RecipeDetails(context.Background(), 50, domain.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, "Bread", recipe.Name)

	_, err = service.RecipeDetails(context.Background(), 7, domain.LanguageEnglish)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "food ID 7 is not a recipe")
}

func TestRecipeNutrition(t *testing.T) {
	ds := NewMockDataSource()
	ds.addFood(1, "Flour", value(10, "Protein", 10, "g"))
	ds.addFood(2, "Yeast", value(10, "Protein", 40, "g"))
	ds.ingredients[50] = []domain.RecipeIngredient{
		{Food: domain.IngredientFood{ID: 1}, Amount: 500, Unit: "g"},
		{Food: domain.IngredientFood{ID: 2}, Amount: 10, Unit: "g"},
	}
	service := newTestFoodService(ds)

	result, err := service.RecipeNutrition(context.Background(), 50, domain.LanguageEnglish)

	require.NoError(t, err)
	require.Len(t, result.TotalValues, 1)
	assert.InDelta(t, 54.0, result.TotalValues[0].Value, 1e-9)
	assert.Equal(t, "Flour", result.Ingredients[0].Name)
	assert.Equal(t, "g", result.Ingredients[1].Unit)
}
