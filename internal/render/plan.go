// Package render turns a solved assignment into the plan.json shape
// described in spec §4.6.
package render

import (
	"mealplanner/internal/models"
	"mealplanner/internal/planner"
)

// IngredientLine is one fully resolved ingredient entry within a
// slot, including the synthetic carb line when the slot's variant
// has a carb.
type IngredientLine struct {
	Item     string  `json:"item"`
	Role     string  `json:"role"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// PlanSlot is the output record for one scheduled slot (spec §4.6).
type PlanSlot struct {
	Day         string            `json:"day"`
	Meal        string            `json:"meal"`
	RecipeID    string            `json:"recipe_id"`
	RecipeName  string            `json:"recipe_name"`
	VariantID   string            `json:"variant_id"`
	Protein     string            `json:"protein"`
	Carb        string            `json:"carb"`
	ProteinG    float64           `json:"protein_g"`
	CarbG       *float64          `json:"carb_g"`
	Ingredients []IngredientLine  `json:"ingredients"`
}

// DerivedStats holds the per-protein and per-carb counts across the
// whole week (spec §4.6).
type DerivedStats struct {
	ProteinCounts map[string]int `json:"protein_counts"`
	CarbCounts    map[string]int `json:"carb_counts"`
}

// Plan is the plan.json document (spec §6).
type Plan struct {
	Seed        int64        `json:"seed"`
	GeneratedAt string       `json:"generated_at"`
	Slots       []PlanSlot   `json:"slots"`
	Derived     DerivedStats `json:"derived"`
}

// BuildPlan resolves every slot's ingredient quantities and derived
// statistics from a solved assignment (spec §4.6). generatedAt is
// passed in rather than computed here so the function stays a pure
// projection of its inputs.
func BuildPlan(catalog *models.Catalog, assignments []planner.SlotAssignment, seed int64, generatedAt string) Plan {
	plan := Plan{
		Seed:        seed,
		GeneratedAt: generatedAt,
		Slots:       make([]PlanSlot, 0, len(assignments)),
		Derived: DerivedStats{
			ProteinCounts: zeroFilledProteinCounts(),
			CarbCounts:    map[string]int{},
		},
	}

	for _, a := range assignments {
		plan.Slots = append(plan.Slots, buildSlot(catalog, a))

		protein := string(a.Variant.Recipe.PrimaryProtein)
		plan.Derived.ProteinCounts[protein]++

		if a.Variant.HasCarb() {
			plan.Derived.CarbCounts[a.Variant.CarbIngredientID]++
		}
	}

	return plan
}

func zeroFilledProteinCounts() map[string]int {
	counts := make(map[string]int, len(models.AllProteins))
	for _, p := range models.AllProteins {
		counts[string(p)] = 0
	}
	return counts
}

func buildSlot(catalog *models.Catalog, a planner.SlotAssignment) PlanSlot {
	recipe := a.Variant.Recipe
	proteinG, _ := catalog.Rules.ProteinPortions.Lookup(recipe.PrimaryProtein, a.Slot.Meal)

	carb := "none"
	var carbG *float64
	ingredients := make([]IngredientLine, 0, len(recipe.Ingredients)+1)

	for _, ri := range recipe.Ingredients {
		qty, unit := resolveQuantity(catalog, ri, recipe.PrimaryProtein, a.Slot.Meal)
		role := "ingredient"
		if ri.Quantity.Kind == models.QtyPortion {
			role = "protein"
		}
		ingredients = append(ingredients, IngredientLine{Item: ri.Item, Role: role, Quantity: qty, Unit: unit})
	}

	if a.Variant.HasCarb() {
		carb = a.Variant.CarbIngredientID
		g := carbDefaultGrams(catalog, a.Variant.CarbIngredientID)
		carbG = &g
		ingredients = append(ingredients, IngredientLine{
			Item:     a.Variant.CarbIngredientID,
			Role:     "carb",
			Quantity: g,
			Unit:     catalog.Ingredients[a.Variant.CarbIngredientID].Unit,
		})
	}

	return PlanSlot{
		Day:         a.Slot.DayLabel,
		Meal:        string(a.Slot.Meal),
		RecipeID:    a.Variant.BaseRecipeID,
		RecipeName:  recipe.Name,
		VariantID:   a.Variant.VariantID,
		Protein:     string(recipe.PrimaryProtein),
		Carb:        carb,
		ProteinG:    proteinG,
		CarbG:       carbG,
		Ingredients: ingredients,
	}
}

// resolveQuantity implements the per-ingredient resolution rules of
// spec §4.6.
func resolveQuantity(catalog *models.Catalog, ri models.RecipeIngredient, protein models.ProteinType, meal models.MealType) (float64, string) {
	unit := catalog.Ingredients[ri.Item].Unit
	switch ri.Quantity.Kind {
	case models.QtyPortion:
		g, _ := catalog.Rules.ProteinPortions.Lookup(protein, meal)
		return g, unit
	case models.QtyGrams, models.QtyMillilitre, models.QtyUnits:
		return ri.Quantity.Value, unit
	default:
		return 0, unit
	}
}

func carbDefaultGrams(catalog *models.Catalog, carbID string) float64 {
	ingredient, ok := catalog.Ingredients[carbID]
	if !ok || ingredient.DefaultQtyG == nil {
		return 0
	}
	return *ingredient.DefaultQtyG
}
