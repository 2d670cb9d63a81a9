// Package planner encodes the weekly meal plan as a constraint
// satisfaction problem over slots and recipe variants, and solves it
// deterministically for a given seed (spec §4.3-§4.5).
package planner

import "mealplanner/internal/models"

// Model is the built CSP instance: the slot list in canonical order,
// the variant table, and, per slot, the indices into the variant
// table admissible for that slot's meal. Carb-by-meal filtering
// (§4.4 rule 5) is applied once here, at build time, rather than
// re-checked on every assignment.
type Model struct {
	Slots       []models.Slot
	Variants    []models.RecipeVariant
	Admissible  [][]int
	Rules       models.Rules
	Ingredients map[string]models.Ingredient
}

// Build constructs the CSP model from a validated catalog and its
// expanded variant table (spec §4.3). It does not solve anything.
func Build(catalog *models.Catalog, variantTable []models.RecipeVariant) *Model {
	rules := catalog.Rules
	slots := models.BuildSlots(rules.Week)
	admissible := make([][]int, len(slots))

	for si, slot := range slots {
		allowCarbs := rules.MealRules[slot.Meal].AllowCarbs
		for vi, v := range variantTable {
			if !v.Recipe.PermitsMeal(slot.Meal) {
				continue
			}
			if v.HasCarb() && !allowCarbs {
				continue
			}
			admissible[si] = append(admissible[si], vi)
		}
	}

	return &Model{
		Slots:       slots,
		Variants:    variantTable,
		Admissible:  admissible,
		Rules:       rules,
		Ingredients: catalog.Ingredients,
	}
}

// FirstEmptySlot returns the index of the first slot with no
// admissible variant, or -1 if every slot has at least one. A slot
// with no admissible variant makes the model infeasible by
// construction (spec §4.3).
func (m *Model) FirstEmptySlot() int {
	for i, candidates := range m.Admissible {
		if len(candidates) == 0 {
			return i
		}
	}
	return -1
}

// mealIndex returns the position of meal within the week's declared
// meal order, used to compute the slot index of "the same meal on a
// different day" in O(1).
func (m *Model) mealIndex(meal models.MealType) int {
	for i, mt := range m.Rules.Week.Meals {
		if mt == meal {
			return i
		}
	}
	return -1
}

// sameMealSlotIndex returns the slot index for (dayIndex, meal), or
// -1 if dayIndex is out of range.
func (m *Model) sameMealSlotIndex(dayIndex int, meal models.MealType) int {
	if dayIndex < 0 || dayIndex >= len(m.Rules.Week.Days) {
		return -1
	}
	numMeals := len(m.Rules.Week.Meals)
	return dayIndex*numMeals + m.mealIndex(meal)
}
