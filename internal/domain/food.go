package domain

// Food is a food or recipe as stored in the nutrition database
type Food struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	IsGeneric       bool       `json:"isgeneric"`
	IsRecipe        bool       `json:"isrecipe"`
	Synonyms        []Synonym  `json:"synonyms,omitempty"`
	Categories      []Category `json:"categories,omitempty"`
	MatrixUnitCode  string     `json:"matrixunitcode,omitempty"`
	SpecificGravity float64    `json:"specificgravity,omitempty"`
	YieldFactor     float64    `json:"yieldfactor,omitempty"`
	FoodID          int        `json:"foodid,omitempty"`
}

// Synonym is an alternative name of a food
type Synonym struct {
	ID   int    `json:"id"`
	Term string `json:"term"`
	Type string `json:"type,omitempty"`
}

// Category is a food category
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// TopCategory is a top level category of the classification
type TopCategory struct {
	Letter         string `json:"letter"`
	Description    string `json:"description"`
	Classification string `json:"classification"`
}

// CategoryCount is a category with the number of foods matching a search
type CategoryCount struct {
	CategoryID    int    `json:"categoryId"`
	CategoryName  string `json:"categoryName"`
	NumberOfFoods int    `json:"numberOfFoods"`
}

// FoodName is a term under which a food is found
type FoodName struct {
	ID   int    `json:"id"`
	Term string `json:"term"`
}

// FoodSummary is a search hit
type FoodSummary struct {
	ID         int        `json:"id"`
	Generic    bool       `json:"generic"`
	Names      []FoodName `json:"names"`
	Synonyms   []Synonym  `json:"synonyms"`
	Categories []int      `json:"categories"`
}

// RecipeIngredient is an ingredient of a recipe stored upstream
type RecipeIngredient struct {
	Food     IngredientFood `json:"foodid"`
	Amount   float64        `json:"amount"`
	Percent  float64        `json:"percent,omitempty"`
	Unit     string         `json:"unit"`
	IsRecipe bool           `json:"isrecipe"`
}

// IngredientFood references the food used as a recipe ingredient
type IngredientFood struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DatabaseVersion describes the release of the upstream database
type DatabaseVersion struct {
	ID   int    `json:"idversion"`
	Text string `json:"versiontext"`
}

// SearchRequest represents a food search
type SearchRequest struct {
	Query    string
	Language Language
	// Generic restricts results to generic (true) or branded (false) foods when set.
	Generic  *bool
	Category int
	Limit    int
	Offset   int
}

// CategoryOverview is a category together with its direct subcategories
type CategoryOverview struct {
	ID            int        `json:"id"`
	Subcategories []Category `json:"subcategories"`
}
