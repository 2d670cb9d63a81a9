package models

// RecipeIngredient is one line of a recipe's ingredient list. Exactly
// one quantity form is set, enforced at load time (spec §3).
type RecipeIngredient struct {
	Item     string
	Quantity Quantity
}

// CarbPolicy encodes a recipe's carb strategy and its invariants
// (spec §3):
//   - NONE: Default and Allowed are both empty.
//   - FIXED: Default is set, references a CARB ingredient, Allowed is empty.
//   - OPTIONAL: Allowed is non-empty (each a CARB), Default is set and a
//     member of Allowed.
type CarbPolicy struct {
	Strategy CarbStrategy
	Default  string
	Allowed  []string
}

// Recipe is a catalog entry identified by a unique id (spec §3).
type Recipe struct {
	ID             string
	Name           string
	MealTypes      []MealType
	PrimaryProtein ProteinType
	Carbs          CarbPolicy
	Ingredients    []RecipeIngredient
}

// PermitsMeal reports whether this recipe may be scheduled at the
// given meal.
func (r Recipe) PermitsMeal(m MealType) bool {
	for _, mt := range r.MealTypes {
		if mt == m {
			return true
		}
	}
	return false
}

// RecipeIngredientRaw mirrors a single ingredients[] entry in a
// recipes/*.yml file before validation.
type RecipeIngredientRaw struct {
	Item     string   `yaml:"item"`
	Qty      string   `yaml:"qty"` // only meaningful value: "@portion"
	QtyG     *float64 `yaml:"qty_g"`
	QtyML    *float64 `yaml:"qty_ml"`
	QtyUnits *float64 `yaml:"qty_units"`
}

// CarbPolicyRaw mirrors a recipe's carbs: block before validation.
type CarbPolicyRaw struct {
	Strategy string   `yaml:"strategy"`
	Default  string   `yaml:"default"`
	Allowed  []string `yaml:"allowed"`
}

// RecipeRaw mirrors a recipes/*.yml file before validation.
type RecipeRaw struct {
	ID             string                 `yaml:"id"`
	Name           string                 `yaml:"name"`
	MealTypes      []string               `yaml:"meal_types"`
	PrimaryProtein string                 `yaml:"primary_protein"`
	Carbs          CarbPolicyRaw          `yaml:"carbs"`
	Ingredients    []RecipeIngredientRaw  `yaml:"ingredients"`
}
