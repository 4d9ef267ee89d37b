package domain

import "context"

// NutritionDataSource defines the interface for reading the nutrition database
type NutritionDataSource interface {
	ListComponentSets(ctx context.Context, lang Language) ([]ComponentSet, error)
	ListComponents(ctx context.Context, lang Language) ([]Component, error)
	// TranslateFoodIdentifier maps a public food ID to the database's internal ID (DBID).
	TranslateFoodIdentifier(ctx context.Context, publicID int) (int, error)
	GetFood(ctx context.Context, dbid int, lang Language) (*Food, error)
	GetNutrientValues(ctx context.Context, dbid, componentSetID int, lang Language) ([]NutrientValue, error)
	GetIngredients(ctx context.Context, dbid int, lang Language) ([]RecipeIngredient, error)
	SearchFoods(ctx context.Context, req SearchRequest) ([]FoodSummary, error)
	CategorizedFoods(ctx context.Context, req SearchRequest) ([]CategoryCount, error)
	TopCategories(ctx context.Context, lang Language) ([]TopCategory, error)
	Subcategories(ctx context.Context, categoryID int, lang Language) ([]Category, error)
}

// PreferenceStore persists per-user language choices
type PreferenceStore interface {
	GetLanguage(ctx context.Context, userID string) (Language, error)
	SetLanguage(ctx context.Context, userID string, lang Language) error
}

// Localizer renders messages and values for display
type Localizer interface {
	Translate(key string, lang Language) string
	FormatValueWithUnit(value float64, unit string, lang Language) string
}
