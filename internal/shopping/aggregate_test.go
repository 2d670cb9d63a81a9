package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealplanner/internal/models"
	"mealplanner/internal/planner"
)

func shoppingCatalog() *models.Catalog {
	riceDefault := 80.0
	return &models.Catalog{
		Ingredients: map[string]models.Ingredient{
			"chicken_breast": {ID: "chicken_breast", Display: "Chicken Breast", Unit: "g", Section: "meat", Kind: models.KindProtein},
			"rice":           {ID: "rice", Display: "Rice", Unit: "g", Section: "grains", Kind: models.KindCarb, DefaultQtyG: &riceDefault},
			"salt":           {ID: "salt", Display: "Salt", Unit: "g", Section: "pantry", Kind: models.KindOther},
		},
		Rules: models.Rules{
			ProteinPortions: models.ProteinPortions{
				models.Chicken: {models.Lunch: 150, models.Dinner: 180},
			},
		},
	}
}

func chickenRiceRecipe() models.Recipe {
	return models.Recipe{
		ID:             "chicken_rice",
		Name:           "Chicken Rice",
		MealTypes:      []models.MealType{models.Lunch, models.Dinner},
		PrimaryProtein: models.Chicken,
		Carbs:          models.CarbPolicy{Strategy: models.CarbFixed, Default: "rice"},
		Ingredients: []models.RecipeIngredient{
			{Item: "chicken_breast", Quantity: models.Quantity{Kind: models.QtyPortion}},
			{Item: "salt", Quantity: models.Quantity{Kind: models.QtyGrams, Value: 2}},
		},
	}
}

func TestBuild_SumsQuantitiesAcrossSlots(t *testing.T) {
	catalog := shoppingCatalog()
	recipe := chickenRiceRecipe()
	variant := models.RecipeVariant{BaseRecipeID: recipe.ID, VariantID: "chicken_rice__carb_rice", Recipe: recipe, CarbIngredientID: "rice"}

	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Dinner}, Variant: variant},
	}

	list := Build(catalog, assignments)

	meat := list.Sections["meat"]
	require.Len(t, meat, 1)
	assert.Equal(t, 330.0, meat[0].Quantity, "150g lunch + 180g dinner portions must sum exactly")

	grains := list.Sections["grains"]
	require.Len(t, grains, 1)
	assert.Equal(t, 160.0, grains[0].Quantity, "two default 80g rice servings must sum to 160g")
}

func TestBuild_SubtractsPantryItemsEntirely(t *testing.T) {
	catalog := shoppingCatalog()
	recipe := chickenRiceRecipe()
	variant := models.RecipeVariant{BaseRecipeID: recipe.ID, VariantID: "chicken_rice__carb_rice", Recipe: recipe, CarbIngredientID: "rice"}
	catalog.Pantry = models.Pantry{Items: map[string]struct{}{"salt": {}}}

	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
	}

	list := Build(catalog, assignments)

	for _, items := range list.Sections {
		for _, item := range items {
			assert.NotEqual(t, "salt", item.Item, "a pantry ingredient must never appear in the shopping list")
		}
	}
}

func TestBuild_OmitsSectionsLeftEmptyByPantrySubtraction(t *testing.T) {
	catalog := shoppingCatalog()
	recipe := models.Recipe{
		ID:             "plain_chicken",
		Name:           "Plain Chicken",
		MealTypes:      []models.MealType{models.Lunch},
		PrimaryProtein: models.Chicken,
		Carbs:          models.CarbPolicy{Strategy: models.CarbNone},
		Ingredients: []models.RecipeIngredient{
			{Item: "chicken_breast", Quantity: models.Quantity{Kind: models.QtyPortion}},
			{Item: "salt", Quantity: models.Quantity{Kind: models.QtyGrams, Value: 2}},
		},
	}
	variant := models.RecipeVariant{BaseRecipeID: recipe.ID, VariantID: "plain_chicken__carb_none", Recipe: recipe}
	catalog.Pantry = models.Pantry{Items: map[string]struct{}{"salt": {}}}

	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
	}

	list := Build(catalog, assignments)

	// salt is the only ingredient in the "pantry" section here, and it
	// is entirely subtracted, so the section must not appear at all —
	// not as a present key holding an empty slice.
	assert.NotContains(t, list.Sections, "pantry")
}

func TestBuild_PreservesInsertionOrderForSameSlotSameSectionTies(t *testing.T) {
	catalog := shoppingCatalog()
	catalog.Ingredients["onion"] = models.Ingredient{ID: "onion", Display: "Onion", Unit: "g", Section: "produce", Kind: models.KindOther}
	catalog.Ingredients["garlic"] = models.Ingredient{ID: "garlic", Display: "Garlic", Unit: "g", Section: "produce", Kind: models.KindOther}

	recipe := models.Recipe{
		ID:             "stir_fry",
		Name:           "Stir Fry",
		MealTypes:      []models.MealType{models.Lunch},
		PrimaryProtein: models.Chicken,
		Carbs:          models.CarbPolicy{Strategy: models.CarbNone},
		Ingredients: []models.RecipeIngredient{
			{Item: "chicken_breast", Quantity: models.Quantity{Kind: models.QtyPortion}},
			{Item: "onion", Quantity: models.Quantity{Kind: models.QtyGrams, Value: 50}},
			{Item: "garlic", Quantity: models.Quantity{Kind: models.QtyGrams, Value: 10}},
		},
	}
	variant := models.RecipeVariant{BaseRecipeID: recipe.ID, VariantID: "stir_fry__carb_none", Recipe: recipe}

	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
	}

	// Build is deterministic by construction, so running it repeatedly
	// must keep reproducing the recipe's own ingredient-list order
	// within the tied "produce" section, not whatever order a map
	// iteration happened to settle on.
	for i := 0; i < 20; i++ {
		list := Build(catalog, assignments)
		produce := list.Sections["produce"]
		require.Len(t, produce, 2)
		assert.Equal(t, "onion", produce[0].Item)
		assert.Equal(t, "garlic", produce[1].Item)
	}
}

func TestBuild_GroupsItemsBySection(t *testing.T) {
	catalog := shoppingCatalog()
	recipe := chickenRiceRecipe()
	variant := models.RecipeVariant{BaseRecipeID: recipe.ID, VariantID: "chicken_rice__carb_rice", Recipe: recipe, CarbIngredientID: "rice"}

	assignments := []planner.SlotAssignment{
		{Slot: models.Slot{DayIndex: 0, DayLabel: "mon", Meal: models.Lunch}, Variant: variant},
	}

	list := Build(catalog, assignments)

	assert.Contains(t, list.Sections, "meat")
	assert.Contains(t, list.Sections, "grains")
	require.Contains(t, list.Sections, "pantry")
	assert.Equal(t, 2.0, list.Sections["pantry"][0].Quantity, "salt is still purchasable here since it isn't listed in pantry.yml for this catalog")
}
