package models

import "fmt"

// Slot identifies one schedulable meal position in the week. Slots
// are generated in canonical day-major, meal-order order (spec §9
// "Canonical order") and that order is preserved everywhere a slot
// list is iterated.
type Slot struct {
	DayIndex int
	DayLabel string
	Meal     MealType
}

// ID returns the slot's canonical identifier, "{day}_{meal}", used to
// name the offending slot in solver errors. plan.json carries the day
// and meal as separate fields rather than this identifier.
func (s Slot) ID() string {
	return fmt.Sprintf("%s_%s", s.DayLabel, s.Meal)
}

// BuildSlots expands a Week into its canonical, ordered slot list:
// for each day in week order, one slot per meal in week.Meals order.
func BuildSlots(week Week) []Slot {
	slots := make([]Slot, 0, len(week.Days)*len(week.Meals))
	for i, day := range week.Days {
		for _, meal := range week.Meals {
			slots = append(slots, Slot{DayIndex: i, DayLabel: day, Meal: meal})
		}
	}
	return slots
}
