package models

// RecipeVariant is a concrete schedulable unit produced by variant
// expansion (spec §4.2): a recipe bound to one carb choice, or to no
// carb at all. CarbIngredientID is empty when the variant has no carb.
type RecipeVariant struct {
	BaseRecipeID     string
	VariantID        string
	Recipe           Recipe
	CarbIngredientID string
}

// HasCarb reports whether this variant carries a carb.
func (v RecipeVariant) HasCarb() bool {
	return v.CarbIngredientID != ""
}

// VariantIDFor synthesizes the deterministic id scheme from §3/§4.2:
// "{recipe}__carb_none" or "{recipe}__carb_{carb_id}".
func VariantIDFor(recipeID, carbIngredientID string) string {
	if carbIngredientID == "" {
		return recipeID + "__carb_none"
	}
	return recipeID + "__carb_" + carbIngredientID
}
