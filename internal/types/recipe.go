package types

// Ingredient is one line of a recipe's ingredient list. It has no identity
// beyond its position within the recipe.
type Ingredient struct {
	Ingredient   string  `json:"ingredient"`
	RecipeAmount string  `json:"recipe_amount"`
	UnitCost     float64 `json:"unit_cost"`
	TotalCost    float64 `json:"total_cost"`
}

type RecipeData struct {
	Servings       int          `json:"servings"`
	TotalCost      float64      `json:"total_cost"`
	CostPerServing float64      `json:"cost_per_serving"`
	Ingredients    []Ingredient `json:"ingredients"`
}

// Recipe is one entry of a user's stored collection, unique by name within
// that collection. Immutable once fetched for a rendering run.
type Recipe struct {
	Name string     `json:"name"`
	Data RecipeData `json:"data"`
}
