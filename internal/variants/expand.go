// Package variants expands a validated catalog's recipes into the
// concrete schedulable units the CSP encoder assigns to slots (spec
// §4.2).
package variants

import "mealplanner/internal/models"

// Expand walks catalog.RecipeOrder (the deterministic load order) and
// emits one or more RecipeVariants per recipe according to its carb
// strategy:
//   - NONE: one variant, no carb.
//   - FIXED: one variant bound to the default carb.
//   - OPTIONAL: one variant per allowed carb, plus one no-carb variant
//     so the recipe stays schedulable at a meal where carbs are
//     forbidden (§4.4 rule 5).
//
// The returned slice's order is the variant-table insertion order
// referenced throughout the spec as part of the canonical order.
func Expand(catalog *models.Catalog) []models.RecipeVariant {
	var out []models.RecipeVariant

	for _, recipeID := range catalog.RecipeOrder {
		recipe := catalog.Recipes[recipeID]

		switch recipe.Carbs.Strategy {
		case models.CarbNone:
			out = append(out, newVariant(recipe, ""))

		case models.CarbFixed:
			out = append(out, newVariant(recipe, recipe.Carbs.Default))

		case models.CarbOptional:
			for _, carbID := range recipe.Carbs.Allowed {
				out = append(out, newVariant(recipe, carbID))
			}
			out = append(out, newVariant(recipe, ""))
		}
	}

	return out
}

func newVariant(recipe models.Recipe, carbIngredientID string) models.RecipeVariant {
	return models.RecipeVariant{
		BaseRecipeID:     recipe.ID,
		VariantID:        models.VariantIDFor(recipe.ID, carbIngredientID),
		Recipe:           recipe,
		CarbIngredientID: carbIngredientID,
	}
}
