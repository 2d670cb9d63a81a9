package planner

import (
	"context"
	"time"

	"mealplanner/internal/models"
)

// SlotAssignment pairs a slot with the variant the solver chose for
// it, in canonical order — the shape every downstream consumer
// (plan materializer, shopping aggregator) iterates over.
type SlotAssignment struct {
	Slot    models.Slot
	Variant models.RecipeVariant
}

// Run builds the CSP model and solves it for seed, returning the
// resolved slot/variant pairs in canonical order (spec §4.5).
func Run(ctx context.Context, catalog *models.Catalog, variantTable []models.RecipeVariant, seed int64, timeout time.Duration) ([]SlotAssignment, error) {
	model := Build(catalog, variantTable)

	assignment, err := Solve(ctx, model, seed, timeout)
	if err != nil {
		return nil, err
	}

	out := make([]SlotAssignment, len(model.Slots))
	for i, slot := range model.Slots {
		out[i] = SlotAssignment{Slot: slot, Variant: model.Variants[assignment[i]]}
	}
	return out, nil
}
