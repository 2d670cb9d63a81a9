package models

// Pantry is the set of ingredient ids already on hand, subtracted
// from the generated shopping list (spec §3, §4.7).
type Pantry struct {
	Items map[string]struct{}
}

// Contains reports whether an ingredient id is in the pantry.
func (p Pantry) Contains(ingredientID string) bool {
	_, ok := p.Items[ingredientID]
	return ok
}

// PantryRaw mirrors the wrapped form of pantry.yml before validation:
// ingredient ids listed under a top-level items: key. A plain list of
// ids is decoded directly into a []string instead.
type PantryRaw struct {
	Items []string `yaml:"items"`
}
