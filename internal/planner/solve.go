package planner

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"mealplanner/internal/models"
)

// Assignment maps slot index (into Model.Slots) to the chosen
// variant index (into Model.Variants). It is total once a solve
// succeeds.
type Assignment []int

// searchState carries the mutable bookkeeping a chronological
// backtracking search needs to prune branches cheaply: a slot-ordered
// CSP like this one only ever needs to look at counts already
// accumulated, the per-day fish-dinner flags and the same-meal slot on
// the previous day, never the whole partial assignment (spec §4.4, design note in §9
// on emitting constraints in a stable order for reproducible
// branching).
type searchState struct {
	model      *Model
	rng        *rand.Rand
	assignment Assignment

	proteinCounts map[models.ProteinType]int
	carbCounts    map[string]int
	recipeCounts  map[string]int
	fishDinner    []bool // indexed by day index

	deadline time.Time
	ctx      context.Context
	nodes    int
}

// Solve runs a deterministic seeded backtracking search over the
// model's slots in canonical order, returning a total Assignment on
// success. The same model and seed always produce the same
// Assignment (spec §4.5). timeout <= 0 means no deadline beyond the
// context's own.
func Solve(ctx context.Context, model *Model, seed int64, timeout time.Duration) (Assignment, error) {
	if idx := model.FirstEmptySlot(); idx >= 0 {
		return nil, models.NewError(models.Infeasible, model.Slots[idx].ID(), "no admissible variant for this slot")
	}

	deadline := time.Time{}
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	s := &searchState{
		model:         model,
		rng:           rand.New(rand.NewSource(seed)),
		assignment:    make(Assignment, len(model.Slots)),
		proteinCounts: make(map[models.ProteinType]int),
		carbCounts:    make(map[string]int),
		recipeCounts:  make(map[string]int),
		fishDinner:    make([]bool, len(model.Rules.Week.Days)),
		deadline:      deadline,
		ctx:           ctx,
	}
	for i := range s.assignment {
		s.assignment[i] = -1
	}

	solved, err := s.search(0)
	if err != nil {
		return nil, err
	}
	if !solved {
		return nil, models.NewError(models.Infeasible, "", "no feasible assignment satisfies all constraints")
	}
	return s.assignment, nil
}

func (s *searchState) checkDeadline() error {
	s.nodes++
	if s.nodes%256 != 0 {
		return nil
	}
	if s.ctx != nil {
		if err := s.ctx.Err(); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return models.WrapError(models.SolverTimeout, "", err)
			}
			return models.WrapError(models.SolverError, "", err)
		}
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return models.NewError(models.SolverTimeout, "", "solver did not finish within the configured timeout")
	}
	return nil
}

func (s *searchState) search(slotIdx int) (bool, error) {
	if err := s.checkDeadline(); err != nil {
		return false, err
	}
	if slotIdx == len(s.model.Slots) {
		return true, nil
	}

	slot := s.model.Slots[slotIdx]
	order := s.shuffledCandidates(s.model.Admissible[slotIdx])

	for _, vi := range order {
		if !s.tryAssign(slotIdx, slot, vi) {
			continue
		}

		solved, err := s.search(slotIdx + 1)
		if err != nil {
			return false, err
		}
		if solved {
			return true, nil
		}
		s.undoAssign(slotIdx, slot, vi)
	}

	return false, nil
}

// shuffledCandidates returns a seeded random permutation of
// candidates so that different seeds explore the admissible variants
// in a different order, while the same seed always explores them in
// the same order (spec §4.5).
func (s *searchState) shuffledCandidates(candidates []int) []int {
	order := make([]int, len(candidates))
	copy(order, candidates)
	s.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	return order
}

// tryAssign checks every planning constraint (spec §4.4) for placing
// variant vi at slot, mutating the running counters only if the
// placement is valid. Returns false, leaving state untouched, if any
// constraint would be violated.
func (s *searchState) tryAssign(slotIdx int, slot models.Slot, vi int) bool {
	variant := s.model.Variants[vi]
	rules := s.model.Rules

	protein := variant.Recipe.PrimaryProtein
	// A protein absent from weekly_protein_counts has an implicit
	// target of zero: it must never be scheduled.
	if s.proteinCounts[protein]+1 > rules.Constraints.WeeklyProteinCounts[protein] {
		return false
	}

	if rules.Constraints.NoConsecutiveSameProtein && slot.DayIndex > 0 {
		prevIdx := s.model.sameMealSlotIndex(slot.DayIndex-1, slot.Meal)
		if prevIdx >= 0 && s.assignment[prevIdx] >= 0 {
			prevVariant := s.model.Variants[s.assignment[prevIdx]]
			if prevVariant.Recipe.PrimaryProtein == protein {
				return false
			}
		}
	}

	if variant.HasCarb() {
		if limit := s.carbLimit(variant.CarbIngredientID); limit >= 0 {
			if s.carbCounts[variant.CarbIngredientID]+1 > limit {
				return false
			}
		}
	}

	if rules.Constraints.MaxRecipeUsesPerWeek > 0 {
		if s.recipeCounts[variant.BaseRecipeID]+1 > rules.Constraints.MaxRecipeUsesPerWeek {
			return false
		}
	}

	isFishDinner := protein == models.Fish && slot.Meal == models.Dinner
	if isFishDinner {
		if rules.Constraints.FishDinnerMaxPerWeek > 0 && s.countFishDinners()+1 > rules.Constraints.FishDinnerMaxPerWeek {
			return false
		}
		if rules.Constraints.FishDinnerMaxConsecutive > 0 && slot.DayIndex >= 2 {
			window := []bool{s.fishDinner[slot.DayIndex-2], s.fishDinner[slot.DayIndex-1], true}
			if countTrue(window) > rules.Constraints.FishDinnerMaxConsecutive {
				return false
			}
		}
	}

	// All checks passed: commit.
	s.assignment[slotIdx] = vi
	s.proteinCounts[protein]++
	s.recipeCounts[variant.BaseRecipeID]++
	if variant.HasCarb() {
		s.carbCounts[variant.CarbIngredientID]++
	}
	if slot.Meal == models.Dinner {
		s.fishDinner[slot.DayIndex] = isFishDinner
	}
	return true
}

func (s *searchState) undoAssign(slotIdx int, slot models.Slot, vi int) {
	variant := s.model.Variants[vi]
	protein := variant.Recipe.PrimaryProtein

	s.assignment[slotIdx] = -1
	s.proteinCounts[protein]--
	s.recipeCounts[variant.BaseRecipeID]--
	if variant.HasCarb() {
		s.carbCounts[variant.CarbIngredientID]--
	}
	if slot.Meal == models.Dinner {
		s.fishDinner[slot.DayIndex] = false
	}
}

func (s *searchState) carbLimit(carbID string) int {
	ingredient, ok := s.model.Ingredients[carbID]
	if !ok || ingredient.MaxTimesWeek == nil {
		return -1
	}
	return *ingredient.MaxTimesWeek
}

func (s *searchState) countFishDinners() int {
	n := 0
	for _, v := range s.fishDinner {
		if v {
			n++
		}
	}
	return n
}

func countTrue(bs []bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
