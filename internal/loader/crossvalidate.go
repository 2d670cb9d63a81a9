package loader

import "mealplanner/internal/models"

// crossValidate implements the referential and carb-strategy checks
// of spec §4.1. It runs after every file has parsed individually;
// nothing here re-reads a file.
func crossValidate(c *models.Catalog) error {
	for id := range c.Pantry.Items {
		if _, ok := c.Ingredients[id]; !ok {
			return models.NewError(models.ReferentialError, id, "pantry references unknown ingredient")
		}
	}

	if err := validateCarbPortionOverrides(c.Rules.CarbPortions.Overrides, c.Ingredients); err != nil {
		return err
	}

	for _, recipeID := range c.RecipeOrder {
		recipe := c.Recipes[recipeID]

		for _, ing := range recipe.Ingredients {
			ingredient, ok := c.Ingredients[ing.Item]
			if !ok {
				return models.NewError(models.ReferentialError, recipeID,
					"references unknown ingredient %q", ing.Item)
			}
			if ing.Quantity.Kind == models.QtyPortion && ingredient.Kind != models.KindProtein {
				return models.NewError(models.CarbPolicyError, recipeID,
					"@portion can only be used on protein ingredients, but %q is %s", ing.Item, ingredient.Kind)
			}
		}

		if err := validateCarbPolicy(recipeID, recipe.Carbs, c.Ingredients); err != nil {
			return err
		}

		if err := validateProteinCoverage(recipeID, recipe, c.Rules.ProteinPortions); err != nil {
			return err
		}
	}

	return nil
}

func validateCarbPolicy(recipeID string, carbs models.CarbPolicy, ingredients map[string]models.Ingredient) error {
	switch carbs.Strategy {
	case models.CarbNone:
		if carbs.Default != "" || len(carbs.Allowed) > 0 {
			return models.NewError(models.CarbPolicyError, recipeID,
				"strategy NONE cannot have allowed or default carbs")
		}
	case models.CarbFixed:
		if carbs.Default == "" {
			return models.NewError(models.CarbPolicyError, recipeID, "strategy FIXED requires default carb")
		}
		if err := requireCarbIngredient(recipeID, carbs.Default, ingredients); err != nil {
			return err
		}
	case models.CarbOptional:
		if len(carbs.Allowed) == 0 {
			return models.NewError(models.CarbPolicyError, recipeID, "strategy OPTIONAL requires allowed carbs list")
		}
		if carbs.Default == "" {
			return models.NewError(models.CarbPolicyError, recipeID, "strategy OPTIONAL requires default carb")
		}
		inAllowed := false
		for _, carbID := range carbs.Allowed {
			if err := requireCarbIngredient(recipeID, carbID, ingredients); err != nil {
				return err
			}
			if carbID == carbs.Default {
				inAllowed = true
			}
		}
		if !inAllowed {
			return models.NewError(models.CarbPolicyError, recipeID, "default carb must be in allowed list")
		}
	}
	return nil
}

// validateCarbPortionOverrides checks that every carb_portions_g.overrides
// key names a real CARB ingredient (spec §9 OQ2). The override values
// themselves are never consulted when resolving a quantity, but the key
// set is still validated so a typo'd or stale override is caught at
// load time rather than silently ignored.
func validateCarbPortionOverrides(overrides map[string]float64, ingredients map[string]models.Ingredient) error {
	for carbID := range overrides {
		if err := requireCarbIngredient("rules.carb_portions_g.overrides", carbID, ingredients); err != nil {
			return err
		}
	}
	return nil
}

func requireCarbIngredient(recipeID, carbID string, ingredients map[string]models.Ingredient) error {
	ingredient, ok := ingredients[carbID]
	if !ok {
		return models.NewError(models.ReferentialError, recipeID, "carb %q not found", carbID)
	}
	if ingredient.Kind != models.KindCarb {
		return models.NewError(models.CarbPolicyError, recipeID, "%q is not a carb", carbID)
	}
	return nil
}

func validateProteinCoverage(recipeID string, recipe models.Recipe, portions models.ProteinPortions) error {
	byMeal, ok := portions[recipe.PrimaryProtein]
	if !ok {
		return models.NewError(models.RulesCoverageError, recipeID,
			"protein type %s not found in rules", recipe.PrimaryProtein)
	}
	for _, meal := range recipe.MealTypes {
		if _, ok := byMeal[meal]; !ok {
			return models.NewError(models.RulesCoverageError, recipeID,
				"no portion defined for %s at %s", recipe.PrimaryProtein, meal)
		}
	}
	return nil
}
