package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nutrimcp/backend/internal/domain"
)

// referenceQuantity is the basis upstream values are normalized to (per 100 g).
const referenceQuantity = 100.0

// ingredientResolver is the part of NutrientResolver the aggregator needs
type ingredientResolver interface {
	Resolve(ctx context.Context, foodID, componentSetID int, lang domain.Language) (string, []domain.NutrientValue, error)
}

// RecipeAggregatorConfig holds configuration for the aggregator
type RecipeAggregatorConfig struct {
	// MaxConcurrency bounds in-flight ingredient resolutions; 0 means unbounded.
	MaxConcurrency int
}

// RecipeAggregator computes the nutrition totals of a list of ingredients
type RecipeAggregator struct {
	source         domain.NutritionDataSource
	resolver       ingredientResolver
	localizer      domain.Localizer
	maxConcurrency int
	logger         zerolog.Logger
}

// NewRecipeAggregator creates an aggregator
func NewRecipeAggregator(
	source domain.NutritionDataSource,
	resolver ingredientResolver,
	localizer domain.Localizer,
	config RecipeAggregatorConfig,
	logger zerolog.Logger,
) *RecipeAggregator {
	return &RecipeAggregator{
		source:         source,
		resolver:       resolver,
		localizer:      localizer,
		maxConcurrency: config.MaxConcurrency,
		logger:         logger.With().Str("component", "aggregator").Logger(),
	}
}

// resolution is the outcome of resolving one ingredient
type resolution struct {
	detail domain.IngredientDetail
	err    error
}

// accumulator is a totals entry under construction
type accumulator struct {
	component domain.Component
	value     float64
	unit      string
}

// Aggregate resolves every ingredient and merges the scaled nutrient values
// into one totals table sorted by component ID. Any failed ingredient fails
// the whole call.
func (a *RecipeAggregator) Aggregate(
	ctx context.Context,
	ingredients []domain.Ingredient,
	lang domain.Language,
) (*domain.RecipeNutrition, error) {
	if err := validateIngredients(ingredients); err != nil {
		return nil, err
	}

	componentSetID, err := a.defaultComponentSet(ctx, lang)
	if err != nil {
		return nil, err
	}

	details, err := a.resolveAll(ctx, ingredients, componentSetID, lang)
	if err != nil {
		return nil, err
	}

	totals := a.finalize(mergeContributions(details), lang)
	if err := checkFinite(totals); err != nil {
		return nil, err
	}

	a.logger.Debug().
		Int("ingredients", len(details)).
		Int("components", len(totals)).
		Int("component_set", componentSetID).
		Msg("recipe aggregated")

	return &domain.RecipeNutrition{
		Ingredients: details,
		TotalValues: totals,
	}, nil
}

func validateIngredients(ingredients []domain.Ingredient) error {
	if len(ingredients) == 0 {
		return fmt.Errorf("%w: at least one ingredient is required for recipe analysis", domain.ErrInvalidInput)
	}
	for i, ing := range ingredients {
		if ing.FoodID <= 0 {
			return fmt.Errorf("%w: ingredient %d: food ID must be positive, got %d", domain.ErrInvalidInput, i, ing.FoodID)
		}
		if ing.Amount < 0 || math.IsNaN(ing.Amount) || math.IsInf(ing.Amount, 0) {
			return fmt.Errorf("%w: ingredient %d: invalid amount %v", domain.ErrInvalidInput, i, ing.Amount)
		}
	}
	return nil
}

// defaultComponentSet picks the first set listed upstream.
func (a *RecipeAggregator) defaultComponentSet(ctx context.Context, lang domain.Language) (int, error) {
	sets, err := a.source.ListComponentSets(ctx, lang)
	if err != nil {
		return 0, classify(err)
	}
	if len(sets) == 0 {
		return 0, fmt.Errorf("%w: failed to retrieve component sets", domain.ErrUpstream)
	}
	return sets[0].ID, nil
}

// resolveAll resolves the ingredients concurrently. Each task records its own
// outcome; the first failure cancels the remaining tasks.
func (a *RecipeAggregator) resolveAll(
	ctx context.Context,
	ingredients []domain.Ingredient,
	componentSetID int,
	lang domain.Language,
) ([]domain.IngredientDetail, error) {
	results := make([]resolution, len(ingredients))

	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}
	for i, ing := range ingredients {
		g.Go(func() error {
			name, values, err := a.resolver.Resolve(gctx, ing.FoodID, componentSetID, lang)
			if err != nil {
				results[i].err = &domain.IngredientError{Index: i, FoodID: ing.FoodID, Err: err}
				return results[i].err
			}
			results[i].detail = domain.IngredientDetail{
				Name:              name,
				Amount:            ing.Amount,
				Unit:              ing.Unit,
				NutritionalValues: values,
			}
			return nil
		})
	}
	// Outcomes are inspected below; Wait only joins the tasks.
	_ = g.Wait()

	if err := firstFailure(ctx, results); err != nil {
		a.logger.Warn().Err(err).Msg("recipe aggregation failed")
		return nil, err
	}

	details := make([]domain.IngredientDetail, len(results))
	for i, r := range results {
		details[i] = r.detail
	}
	return details, nil
}

// firstFailure returns the failure that caused the aggregation to abort.
// Failures of tasks that were merely cancelled by a sibling are skipped unless
// nothing else failed.
func firstFailure(ctx context.Context, results []resolution) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("recipe aggregation cancelled: %w", context.Cause(ctx))
	}

	var cancelled error
	for _, r := range results {
		if r.err == nil {
			continue
		}
		if errors.Is(r.err, context.Canceled) {
			if cancelled == nil {
				cancelled = r.err
			}
			continue
		}
		return classifyIngredient(r.err)
	}
	if cancelled != nil {
		return classifyIngredient(cancelled)
	}
	return nil
}

// classifyIngredient makes sure an IngredientError carries a classified cause.
func classifyIngredient(err error) error {
	var ingErr *domain.IngredientError
	if errors.As(err, &ingErr) {
		return &domain.IngredientError{Index: ingErr.Index, FoodID: ingErr.FoodID, Err: classify(ingErr.Err)}
	}
	return classify(err)
}

// mergeContributions folds the scaled values of every ingredient, in input
// order, into one accumulator per component ID. Absent and zero magnitudes are
// skipped; the unit of a component is the first one seen for it.
func mergeContributions(details []domain.IngredientDetail) map[int]*accumulator {
	totals := make(map[int]*accumulator)
	for _, detail := range details {
		scale := detail.Amount / referenceQuantity
		for _, v := range detail.NutritionalValues {
			magnitude, ok := v.Magnitude.Float()
			if !ok || magnitude == 0 {
				continue
			}
			contribution := magnitude * scale

			if acc, ok := totals[v.Component.ID]; ok {
				acc.value += contribution
				continue
			}
			totals[v.Component.ID] = &accumulator{
				component: v.Component,
				value:     contribution,
				unit:      v.UnitName(),
			}
		}
	}
	return totals
}

// checkFinite rejects totals that overflowed the float64 range.
func checkFinite(totals []domain.TotalsEntry) error {
	for _, entry := range totals {
		if math.IsInf(entry.Value, 0) || math.IsNaN(entry.Value) {
			return fmt.Errorf("%w: total for component %d is out of range", domain.ErrInvalidInput, entry.Component.ID)
		}
	}
	return nil
}

// finalize formats every accumulated entry and orders them by component ID.
func (a *RecipeAggregator) finalize(totals map[int]*accumulator, lang domain.Language) []domain.TotalsEntry {
	entries := make([]domain.TotalsEntry, 0, len(totals))
	for _, acc := range totals {
		entries = append(entries, domain.TotalsEntry{
			Component:      acc.component,
			Value:          acc.value,
			FormattedValue: a.localizer.FormatValueWithUnit(acc.value, acc.unit, lang),
			Unit:           acc.unit,
		})
	}
	slices.SortFunc(entries, func(x, y domain.TotalsEntry) int {
		return cmp.Compare(x.Component.ID, y.Component.ID)
	})
	return entries
}
