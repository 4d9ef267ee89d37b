package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nutrimcp/backend/internal/domain"
)

// missingValue is shown in a comparison cell when a food has no value for a component.
const missingValue = "-"

// minCompareFoods is the smallest number of foods a comparison accepts.
const minCompareFoods = 2

// FoodService implements the food, category and recipe lookups
type FoodService struct {
	source       domain.NutritionDataSource
	resolver     *NutrientResolver
	aggregator   *RecipeAggregator
	matcher      *MatchingService
	localizer    domain.Localizer
	preprocessor *QueryPreprocessor
	logger       zerolog.Logger
}

// NewFoodService creates a new food service
func NewFoodService(
	source domain.NutritionDataSource,
	resolver *NutrientResolver,
	aggregator *RecipeAggregator,
	matcher *MatchingService,
	localizer domain.Localizer,
	logger zerolog.Logger,
) *FoodService {
	return &FoodService{
		source:       source,
		resolver:     resolver,
		aggregator:   aggregator,
		matcher:      matcher,
		localizer:    localizer,
		preprocessor: NewQueryPreprocessor(),
		logger:       logger.With().Str("component", "food_service").Logger(),
	}
}

// SearchFoods searches foods by name. Hits are ranked by how well their names
// match the query.
func (s *FoodService) SearchFoods(ctx context.Context, req domain.SearchRequest) ([]domain.FoodSummary, error) {
	req.Query = s.preprocessor.PreprocessQuery(req.Query)
	if req.Query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}
	if req.Limit < 0 || req.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", domain.ErrInvalidInput)
	}

	foods, err := s.source.SearchFoods(ctx, req)
	if err != nil {
		return nil, classify(err)
	}
	foods, err = s.matcher.Rank(ctx, req.Query, foods)
	if err != nil {
		return nil, classify(err)
	}

	s.logger.Debug().Str("query", req.Query).Int("results", len(foods)).Msg("search completed")
	return foods, nil
}

// CategorizedFoods counts the search hits per category
func (s *FoodService) CategorizedFoods(ctx context.Context, req domain.SearchRequest) ([]domain.CategoryCount, error) {
	req.Query = s.preprocessor.PreprocessQuery(req.Query)
	if req.Query == "" {
		return nil, fmt.Errorf("%w: search query is required", domain.ErrInvalidInput)
	}

	counts, err := s.source.CategorizedFoods(ctx, req)
	return counts, classify(err)
}

// TopCategories lists the top level categories
func (s *FoodService) TopCategories(ctx context.Context, lang domain.Language) ([]domain.TopCategory, error) {
	categories, err := s.source.TopCategories(ctx, lang)
	return categories, classify(err)
}

// Category returns a category with its subcategories
func (s *FoodService) Category(ctx context.Context, categoryID int, lang domain.Language) (*domain.CategoryOverview, error) {
	if categoryID <= 0 {
		return nil, fmt.Errorf("%w: category ID must be positive, got %d", domain.ErrInvalidInput, categoryID)
	}

	subcategories, err := s.source.Subcategories(ctx, categoryID, lang)
	if err != nil {
		return nil, classify(err)
	}

	return &domain.CategoryOverview{ID: categoryID, Subcategories: subcategories}, nil
}

// FoodDetails returns a food by its public or internal ID
func (s *FoodService) FoodDetails(ctx context.Context, foodID int, lang domain.Language) (*domain.Food, error) {
	if foodID <= 0 {
		return nil, fmt.Errorf("%w: food ID must be positive, got %d", domain.ErrInvalidInput, foodID)
	}

	food, err := s.source.GetFood(ctx, translateID(ctx, s.source, foodID, s.logger), lang)
	if err != nil {
		return nil, classify(err)
	}
	return food, nil
}

// ComponentSets lists the component sets
func (s *FoodService) ComponentSets(ctx context.Context, lang domain.Language) ([]domain.ComponentSet, error) {
	sets, err := s.source.ListComponentSets(ctx, lang)
	return sets, classify(err)
}

// Components lists every component
func (s *FoodService) Components(ctx context.Context, lang domain.Language) ([]domain.Component, error) {
	components, err := s.source.ListComponents(ctx, lang)
	return components, classify(err)
}

// NutritionalValues returns the values of a food for one component set. A
// componentSetID of 0 selects the first set.
func (s *FoodService) NutritionalValues(
	ctx context.Context,
	foodID, componentSetID int,
	lang domain.Language,
) ([]domain.NutrientValue, error) {
	setID, err := s.componentSet(ctx, componentSetID, lang)
	if err != nil {
		return nil, err
	}
	return s.resolver.NutrientValues(ctx, foodID, setID, lang)
}

// CompareFoods builds a table with one row per component and one column per
// food, in the order the food IDs were given.
func (s *FoodService) CompareFoods(
	ctx context.Context,
	foodIDs []int,
	componentSetID int,
	lang domain.Language,
) (*domain.NutritionComparison, error) {
	if len(foodIDs) < minCompareFoods {
		return nil, fmt.Errorf("%w: at least %d foods are required for comparison", domain.ErrInvalidInput, minCompareFoods)
	}

	setID, err := s.componentSet(ctx, componentSetID, lang)
	if err != nil {
		return nil, err
	}

	foods := make([]domain.Food, len(foodIDs))
	values := make([][]domain.NutrientValue, len(foodIDs))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range foodIDs {
		g.Go(func() error {
			food, err := s.FoodDetails(gctx, id, lang)
			if err != nil {
				return fmt.Errorf("food %d: %w", id, err)
			}
			foods[i] = *food
			return nil
		})
		g.Go(func() error {
			v, err := s.resolver.NutrientValues(gctx, id, setID, lang)
			if err != nil {
				return fmt.Errorf("food %d: %w", id, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, classify(err)
	}

	return &domain.NutritionComparison{
		Foods: foods,
		Rows:  s.comparisonRows(values, lang),
	}, nil
}

func (s *FoodService) comparisonRows(values [][]domain.NutrientValue, lang domain.Language) []domain.ComparisonRow {
	rows := make(map[int]*domain.ComparisonRow)
	for column, foodValues := range values {
		for _, v := range foodValues {
			row, ok := rows[v.Component.ID]
			if !ok {
				row = &domain.ComparisonRow{
					Component: v.Component,
					Values:    make([]domain.ComparisonCell, len(values)),
				}
				for i := range row.Values {
					row.Values[i] = domain.ComparisonCell{FormattedValue: missingValue}
				}
				rows[v.Component.ID] = row
			}
			// The first value listed for a component wins within one food.
			if row.Values[column].FormattedValue != missingValue {
				continue
			}
			magnitude, ok := v.Magnitude.Float()
			if !ok {
				continue
			}
			row.Values[column] = domain.ComparisonCell{
				Value:          magnitude,
				FormattedValue: s.localizer.FormatValueWithUnit(magnitude, v.UnitName(), lang),
			}
		}
	}

	table := make([]domain.ComparisonRow, 0, len(rows))
	for _, row := range rows {
		table = append(table, *row)
	}
	slices.SortFunc(table, func(a, b domain.ComparisonRow) int {
		return cmp.Compare(a.Component.ID, b.Component.ID)
	})
	return table
}

// RecipeIngredients lists the ingredients of a stored recipe
func (s *FoodService) RecipeIngredients(ctx context.Context, recipeID int, lang domain.Language) ([]domain.RecipeIngredient, error) {
	if recipeID <= 0 {
		return nil, fmt.Errorf("%w: recipe ID must be positive, got %d", domain.ErrInvalidInput, recipeID)
	}

	ingredients, err := s.source.GetIngredients(ctx, translateID(ctx, s.source, recipeID, s.logger), lang)
	if err != nil {
		return nil, classify(err)
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: no ingredients found for recipe ID %d", domain.ErrNotFound, recipeID)
	}
	return ingredients, nil
}

// RecipeDetails returns a stored recipe. The ID must refer to a recipe.
func (s *FoodService) RecipeDetails(ctx context.Context, recipeID int, lang domain.Language) (*domain.Food, error) {
	if recipeID <= 0 {
		return nil, fmt.Errorf("%w: recipe ID must be positive, got %d", domain.ErrInvalidInput, recipeID)
	}

	recipe, err := s.source.GetFood(ctx, recipeID, lang)
	if err != nil {
		return nil, classify(err)
	}
	if !recipe.IsRecipe {
		return nil, fmt.Errorf("%w: food ID %d is not a recipe", domain.ErrInvalidInput, recipeID)
	}
	return recipe, nil
}

// RecipeNutrition aggregates the nutrition of a stored recipe from its ingredients
func (s *FoodService) RecipeNutrition(ctx context.Context, recipeID int, lang domain.Language) (*domain.RecipeNutrition, error) {
	stored, err := s.RecipeIngredients(ctx, recipeID, lang)
	if err != nil {
		return nil, err
	}

	ingredients := make([]domain.Ingredient, len(stored))
	for i, ing := range stored {
		ingredients[i] = domain.Ingredient{
			FoodID: ing.Food.ID,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		}
	}
	return s.aggregator.Aggregate(ctx, ingredients, lang)
}

// CalculateRecipeNutrition aggregates caller supplied ingredients
func (s *FoodService) CalculateRecipeNutrition(
	ctx context.Context,
	ingredients []domain.Ingredient,
	lang domain.Language,
) (*domain.RecipeNutrition, error) {
	return s.aggregator.Aggregate(ctx, ingredients, lang)
}

// componentSet returns id when it is set and the first listed set otherwise.
func (s *FoodService) componentSet(ctx context.Context, id int, lang domain.Language) (int, error) {
	if id > 0 {
		return id, nil
	}
	if id < 0 {
		return 0, fmt.Errorf("%w: component set ID must be positive, got %d", domain.ErrInvalidInput, id)
	}
	return s.aggregator.defaultComponentSet(ctx, lang)
}
