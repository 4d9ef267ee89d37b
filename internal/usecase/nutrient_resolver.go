package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nutrimcp/backend/internal/domain"
)

// NutrientResolver resolves a food's name and nutrient values
type NutrientResolver struct {
	source domain.NutritionDataSource
	logger zerolog.Logger
}

// NewNutrientResolver creates a resolver reading from source
func NewNutrientResolver(source domain.NutritionDataSource, logger zerolog.Logger) *NutrientResolver {
	return &NutrientResolver{
		source: source,
		logger: logger.With().Str("component", "resolver").Logger(),
	}
}

// Resolve returns the display name and the nutrient values of foodID for one
// component set. The name and the values are fetched concurrently.
func (r *NutrientResolver) Resolve(
	ctx context.Context,
	foodID, componentSetID int,
	lang domain.Language,
) (string, []domain.NutrientValue, error) {
	if foodID <= 0 {
		return "", nil, fmt.Errorf("%w: food ID must be positive, got %d", domain.ErrInvalidInput, foodID)
	}

	dbid := r.internalID(ctx, foodID)

	var (
		name   string
		values []domain.NutrientValue
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		food, err := r.source.GetFood(gctx, dbid, lang)
		if err != nil {
			return err
		}
		name = food.Name
		return nil
	})
	g.Go(func() error {
		var err error
		values, err = r.values(gctx, foodID, dbid, componentSetID, lang)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, classify(err)
	}

	return name, values, nil
}

// NutrientValues returns the nutrient values of foodID for one component set
func (r *NutrientResolver) NutrientValues(
	ctx context.Context,
	foodID, componentSetID int,
	lang domain.Language,
) ([]domain.NutrientValue, error) {
	if foodID <= 0 {
		return nil, fmt.Errorf("%w: food ID must be positive, got %d", domain.ErrInvalidInput, foodID)
	}
	values, err := r.values(ctx, foodID, r.internalID(ctx, foodID), componentSetID, lang)
	return values, classify(err)
}

func (r *NutrientResolver) values(
	ctx context.Context,
	foodID, dbid, componentSetID int,
	lang domain.Language,
) ([]domain.NutrientValue, error) {
	values, err := r.source.GetNutrientValues(ctx, dbid, componentSetID, lang)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: no nutritional values found for food ID %d with component set ID %d",
			domain.ErrNotFound, foodID, componentSetID)
	}
	return values, nil
}

// internalID translates a public food ID to its DBID. Some IDs are already
// internal, so a failed translation falls back to the given ID.
func (r *NutrientResolver) internalID(ctx context.Context, foodID int) int {
	return translateID(ctx, r.source, foodID, r.logger)
}

func translateID(ctx context.Context, source domain.NutritionDataSource, id int, logger zerolog.Logger) int {
	dbid, err := source.TranslateFoodIdentifier(ctx, id)
	if err != nil || dbid <= 0 {
		logger.Debug().Err(err).Int("id", id).Msg("identifier translation failed, using id as is")
		return id
	}
	return dbid
}
