// Package shopping folds a solved assignment into a grouped,
// pantry-subtracted shopping list (spec §4.7).
package shopping

import (
	"github.com/shopspring/decimal"

	"mealplanner/internal/models"
	"mealplanner/internal/planner"
)

// Item is one shopping-list entry (spec §6).
type Item struct {
	Item     string  `json:"item"`
	Display  string  `json:"display"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Section  string  `json:"section"`
	Notes    string  `json:"notes,omitempty"`
}

// List is the shopping_list.json document: items grouped by section,
// each section ordered by first appearance in the canonical slot
// traversal (spec §4.7).
type List struct {
	Sections map[string][]Item `json:"sections"`
}

// Build aggregates recipe and carb quantities across every scheduled
// slot, subtracts pantry items, and groups the remainder by section.
// Quantities use shopspring/decimal internally so repeated fractional
// additions (e.g. 33.3g three times) round the same way regardless of
// iteration order, then the result is rounded to two decimal places
// on output (spec §4.7, §8 "Shopping consistency").
func Build(catalog *models.Catalog, assignments []planner.SlotAssignment) List {
	totals := map[string]decimal.Decimal{}
	seen := map[string]bool{}
	var order []string

	add := func(ingredientID string, qty decimal.Decimal) {
		if qty.IsZero() {
			return
		}
		totals[ingredientID] = totals[ingredientID].Add(qty)
		if !seen[ingredientID] {
			seen[ingredientID] = true
			order = append(order, ingredientID)
		}
	}

	for _, a := range assignments {
		recipe := a.Variant.Recipe
		for _, ri := range recipe.Ingredients {
			qty := resolveQuantity(catalog, ri, recipe.PrimaryProtein, a.Slot.Meal)
			add(ri.Item, decimal.NewFromFloat(qty))
		}
		if a.Variant.HasCarb() {
			add(a.Variant.CarbIngredientID, decimal.NewFromFloat(carbDefaultGrams(catalog, a.Variant.CarbIngredientID)))
		}
	}

	for ingredientID := range catalog.Pantry.Items {
		delete(totals, ingredientID)
	}

	// order already holds true first-appearance order from the
	// canonical slot/ingredient-line traversal above, so a single pass
	// over it reproduces that order within each section without any
	// further sort (and its tie-breaks) needed.
	bySection := map[string][]Item{}
	for _, id := range order {
		if _, ok := totals[id]; !ok {
			continue // pantry-subtracted
		}
		ingredient, ok := catalog.Ingredients[id]
		if !ok {
			continue
		}
		qty, _ := totals[id].Round(2).Float64()
		bySection[ingredient.Section] = append(bySection[ingredient.Section], Item{
			Item:     id,
			Display:  ingredient.Display,
			Quantity: qty,
			Unit:     ingredient.Unit,
			Section:  ingredient.Section,
		})
	}

	return List{Sections: bySection}
}

func resolveQuantity(catalog *models.Catalog, ri models.RecipeIngredient, protein models.ProteinType, meal models.MealType) float64 {
	switch ri.Quantity.Kind {
	case models.QtyPortion:
		g, _ := catalog.Rules.ProteinPortions.Lookup(protein, meal)
		return g
	case models.QtyGrams, models.QtyMillilitre, models.QtyUnits:
		return ri.Quantity.Value
	default:
		return 0
	}
}

func carbDefaultGrams(catalog *models.Catalog, carbID string) float64 {
	ingredient, ok := catalog.Ingredients[carbID]
	if !ok || ingredient.DefaultQtyG == nil {
		return 0
	}
	return *ingredient.DefaultQtyG
}
