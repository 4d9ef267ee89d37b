package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/nutrimcp/backend/internal/domain"
	"github.com/nutrimcp/backend/internal/i18n"
)

// tool is one MCP tool backed by a use case
type tool struct {
	name           string
	descriptionKey string
	schema         map[string]any
	handle         func(ctx context.Context, args json.RawMessage) (any, error)
}

// localeArgs are accepted by every tool that returns localized data
type localeArgs struct {
	Language string `json:"language"`
	UserID   string `json:"userId"`
}

var localeProperties = map[string]any{
	"language": map[string]any{
		"type":        "string",
		"enum":        []string{"en", "de", "fr", "it"},
		"description": "Response language; defaults to the user's preference, then English",
	},
	"userId": map[string]any{
		"type":        "string",
		"description": "User whose stored language preference applies",
	},
}

// objectSchema builds an object schema from props plus the locale properties.
func objectSchema(props map[string]any, required ...string) map[string]any {
	all := maps.Clone(localeProperties)
	maps.Copy(all, props)
	schema := map[string]any{
		"type":       "object",
		"properties": all,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func integer(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func (s *Server) language(ctx context.Context, args localeArgs) (domain.Language, error) {
	return s.languages.Resolve(ctx, args.Language, args.UserID)
}

func (s *Server) tools() []tool {
	return []tool{
		{
			name:           "search_foods",
			descriptionKey: i18n.KeyToolSearchFoods,
			schema: objectSchema(map[string]any{
				"query":   map[string]any{"type": "string", "description": "Search term"},
				"generic": map[string]any{"type": "boolean", "description": "Only generic (true) or branded (false) foods"},
				"limit":   integer("Maximum number of results (default 20)"),
				"offset":  integer("Number of results to skip"),
			}, "query"),
			handle: s.searchFoods,
		},
		{
			name:           "get_food_details",
			descriptionKey: i18n.KeyToolGetFoodDetails,
			schema: objectSchema(map[string]any{
				"foodId": integer("Food ID"),
			}, "foodId"),
			handle: s.getFoodDetails,
		},
		{
			name:           "get_nutritional_values",
			descriptionKey: i18n.KeyToolNutritionalValues,
			schema: objectSchema(map[string]any{
				"foodId":         integer("Food ID"),
				"componentSetId": integer("Component set ID; defaults to the first set"),
			}, "foodId"),
			handle: s.getNutritionalValues,
		},
		{
			name:           "compare_nutritional_values",
			descriptionKey: i18n.KeyToolCompare,
			schema: objectSchema(map[string]any{
				"foodIds": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "integer"},
					"minItems":    2,
					"description": "IDs of the foods to compare",
				},
				"componentSetId": integer("Component set ID; defaults to the first set"),
			}, "foodIds"),
			handle: s.compareNutritionalValues,
		},
		{
			name:           "get_ingredients",
			descriptionKey: i18n.KeyToolIngredients,
			schema: objectSchema(map[string]any{
				"recipeId": integer("Recipe ID"),
			}, "recipeId"),
			handle: s.getIngredients,
		},
		{
			name:           "calculate_recipe_nutrition",
			descriptionKey: i18n.KeyToolRecipeNutrition,
			schema: objectSchema(map[string]any{
				"ingredients": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"foodId": integer("Food ID"),
							"amount": map[string]any{"type": "number", "description": "Amount in grams"},
							"unit":   map[string]any{"type": "string", "description": "Unit label, e.g. g"},
						},
						"required": []string{"foodId", "amount", "unit"},
					},
					"description": "Recipe ingredients",
				},
			}, "ingredients"),
			handle: s.calculateRecipeNutrition,
		},
		{
			name:           "list_component_sets",
			descriptionKey: i18n.KeyToolComponentSets,
			schema:         objectSchema(nil),
			handle:         s.listComponentSets,
		},
		{
			name:           "set_language_preference",
			descriptionKey: i18n.KeyToolSetLanguage,
			schema:         objectSchema(nil, "userId", "language"),
			handle:         s.setLanguagePreference,
		},
		{
			name:           "detect_language",
			descriptionKey: i18n.KeyToolDetectLanguage,
			schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{"type": "string", "description": "Text to analyse"},
				},
				"required": []string{"text"},
			},
			handle: s.detectLanguage,
		},
	}
}

type searchArgs struct {
	localeArgs
	Query   string `json:"query"`
	Generic *bool  `json:"generic"`
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset"`
}

func (s *Server) searchFoods(ctx context.Context, raw json.RawMessage) (any, error) {
	var args searchArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args.localeArgs)
	if err != nil {
		return nil, err
	}

	foods, err := s.foods.SearchFoods(ctx, domain.SearchRequest{
		Query:    args.Query,
		Language: lang,
		Generic:  args.Generic,
		Limit:    args.Limit,
		Offset:   args.Offset,
	})
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return map[string]any{
			"foods":   foods,
			"message": s.localizer.Translate(i18n.KeySearchNoResult, lang),
		}, nil
	}
	return map[string]any{"foods": foods}, nil
}

type foodArgs struct {
	localeArgs
	FoodID         int `json:"foodId"`
	ComponentSetID int `json:"componentSetId"`
}

func (s *Server) getFoodDetails(ctx context.Context, raw json.RawMessage) (any, error) {
	var args foodArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args.localeArgs)
	if err != nil {
		return nil, err
	}
	return s.foods.FoodDetails(ctx, args.FoodID, lang)
}

func (s *Server) getNutritionalValues(ctx context.Context, raw json.RawMessage) (any, error) {
	var args foodArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args.localeArgs)
	if err != nil {
		return nil, err
	}

	values, err := s.foods.NutritionalValues(ctx, args.FoodID, args.ComponentSetID, lang)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"foodId":            args.FoodID,
		"nutritionalValues": values,
	}, nil
}

type compareArgs struct {
	localeArgs
	FoodIDs        []int `json:"foodIds"`
	ComponentSetID int   `json:"componentSetId"`
}

func (s *Server) compareNutritionalValues(ctx context.Context, raw json.RawMessage) (any, error) {
	var args compareArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args.localeArgs)
	if err != nil {
		return nil, err
	}
	return s.foods.CompareFoods(ctx, args.FoodIDs, args.ComponentSetID, lang)
}

type recipeArgs struct {
	localeArgs
	RecipeID int `json:"recipeId"`
}

func (s *Server) getIngredients(ctx context.Context, raw json.RawMessage) (any, error) {
	var args recipeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args.localeArgs)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.foods.RecipeIngredients(ctx, args.RecipeID, lang)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"recipeId":    args.RecipeID,
		"ingredients": ingredients,
	}, nil
}

type nutritionArgs struct {
	localeArgs
	Ingredients []domain.Ingredient `json:"ingredients"`
}

func (s *Server) calculateRecipeNutrition(ctx context.Context, raw json.RawMessage) (any, error) {
	var args nutritionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args.localeArgs)
	if err != nil {
		return nil, err
	}
	return s.foods.CalculateRecipeNutrition(ctx, args.Ingredients, lang)
}

func (s *Server) listComponentSets(ctx context.Context, raw json.RawMessage) (any, error) {
	var args localeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	lang, err := s.language(ctx, args)
	if err != nil {
		return nil, err
	}

	sets, err := s.foods.ComponentSets(ctx, lang)
	if err != nil {
		return nil, err
	}
	return map[string]any{"componentSets": sets}, nil
}

func (s *Server) setLanguagePreference(ctx context.Context, raw json.RawMessage) (any, error) {
	var args localeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.UserID) == "" {
		return nil, fmt.Errorf("%w: userId is required", domain.ErrInvalidInput)
	}

	lang, err := s.languages.SetPreference(ctx, args.UserID, args.Language)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"userId":   args.UserID,
		"language": lang,
		"message":  s.localizer.Translate(i18n.KeyLanguagePreferenceSet, lang),
	}, nil
}

type detectArgs struct {
	Text string `json:"text"`
}

func (s *Server) detectLanguage(_ context.Context, raw json.RawMessage) (any, error) {
	var args detectArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if strings.TrimSpace(args.Text) == "" {
		return nil, fmt.Errorf("%w: text is required", domain.ErrInvalidInput)
	}
	return map[string]any{"language": s.languages.Detect(args.Text)}, nil
}
