package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/internal/models"
	"mealplanner/internal/planner"
)

func testCatalog() *models.Catalog {
	riceDefault := 80.0
	return &models.Catalog{
		Ingredients: map[string]models.Ingredient{
			"chicken_breast": {ID: "chicken_breast", Unit: "g", Kind: models.KindProtein},
			"rice":           {ID: "rice", Unit: "g", Kind: models.KindCarb, DefaultQtyG: &riceDefault},
			"soy_sauce":      {ID: "soy_sauce", Unit: "ml", Kind: models.KindOther},
		},
		Rules: models.Rules{
			ProteinPortions: models.ProteinPortions{
				models.Chicken: {models.Lunch: 150, models.Dinner: 180},
			},
		},
	}
}

func testRecipe() models.Recipe {
	return models.Recipe{
		ID:             "chicken_rice",
		Name:           "Chicken Rice",
		MealTypes:      []models.MealType{models.Lunch, models.Dinner},
		PrimaryProtein: models.Chicken,
		Carbs:          models.CarbPolicy{Strategy: models.CarbFixed, Default: "rice"},
		Ingredients: []models.RecipeIngredient{
			{Item: "chicken_breast", Quantity: models.Quantity{Kind: models.QtyPortion}},
			{Item: "soy_sauce", Quantity: models.Quantity{Kind: models.QtyMillilitre, Value: 15}},
		},
	}
}

func TestBuildPlan_ResolvesPortionAndRawQuantities(t *testing.T) {
	catalog := testCatalog()
	recipe := testRecipe()
	variant := models.RecipeVariant{
		BaseRecipeID:     recipe.ID,
		VariantID:        models.VariantIDFor(recipe.ID, "rice"),
		Recipe:           recipe,
		CarbIngredientID: "rice",
	}
	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
	}

	plan := BuildPlan(catalog, assignments, 42, "2026-07-30T00:00:00Z")

	require.Len(t, plan.Slots, 1)
	slot := plan.Slots[0]
	assert.Equal(t, "mon", slot.Day)
	assert.Equal(t, "rice", slot.Carb)
	require.NotNil(t, slot.CarbG)
	assert.Equal(t, 80.0, *slot.CarbG)

	var proteinLine, rawLine, carbLine *IngredientLine
	for i := range slot.Ingredients {
		line := &slot.Ingredients[i]
		switch line.Item {
		case "chicken_breast":
			proteinLine = line
		case "soy_sauce":
			rawLine = line
		case "rice":
			carbLine = line
		}
	}
	require.NotNil(t, proteinLine)
	assert.Equal(t, "protein", proteinLine.Role)
	assert.Equal(t, 150.0, proteinLine.Quantity, "lunch portion size must come from protein_portions_g")

	require.NotNil(t, rawLine)
	assert.Equal(t, 15.0, rawLine.Quantity, "a raw qty_ml value passes through unchanged")

	require.NotNil(t, carbLine)
	assert.Equal(t, "carb", carbLine.Role)
	assert.Equal(t, 80.0, carbLine.Quantity)
}

func TestBuildPlan_DerivedCountsAreZeroFilledAndAccurate(t *testing.T) {
	catalog := testCatalog()
	recipe := testRecipe()
	variant := models.RecipeVariant{
		BaseRecipeID:     recipe.ID,
		VariantID:        models.VariantIDFor(recipe.ID, "rice"),
		Recipe:           recipe,
		CarbIngredientID: "rice",
	}
	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
		{Slot: models.Slot{DayIndex: 1, DayLabel: "tue", Meal: models.Dinner}, Variant: variant},
	}

	plan := BuildPlan(catalog, assignments, 1, "2026-07-30T00:00:00Z")

	assert.Equal(t, 2, plan.Derived.ProteinCounts["CHICKEN"])
	for _, p := range models.AllProteins {
		if p != models.Chicken {
			assert.Equal(t, 0, plan.Derived.ProteinCounts[string(p)], "unused proteins must still appear, zero-filled")
		}
	}
	assert.Equal(t, 2, plan.Derived.CarbCounts["rice"])
}

func TestBuildPlan_NoCarbVariantOmitsCarbLine(t *testing.T) {
	catalog := testCatalog()
	recipe := testRecipe()
	recipe.Carbs = models.CarbPolicy{Strategy: models.CarbNone}
	variant := models.RecipeVariant{
		BaseRecipeID: recipe.ID,
		VariantID:    models.VariantIDFor(recipe.ID, ""),
		Recipe:       recipe,
	}
	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
	}

	plan := BuildPlan(catalog, assignments, 1, "2026-07-30T00:00:00Z")

	slot := plan.Slots[0]
	assert.Equal(t, "none", slot.Carb)
	assert.Nil(t, slot.CarbG)
	assert.Empty(t, plan.Derived.CarbCounts)
	for _, line := range slot.Ingredients {
		assert.NotEqual(t, "carb", line.Role)
	}
}
