package models

// Ingredient is a catalog entry identified by its key in ingredients.yml.
// DefaultQtyG and MaxTimesWeek are only ever set when Kind == KindCarb;
// the cross-validator enforces that invariant (spec §3, §4.1).
type Ingredient struct {
	ID           string
	Display      string
	Unit         string
	Section      string
	Kind         IngredientKind
	DefaultQtyG  *float64
	MaxTimesWeek *int
}

// IngredientRaw mirrors ingredients.yml's per-entry shape before the
// cross-validator has run. Every top-level key of the YAML file is taken
// as an ingredient id; unknown keys inside an entry are rejected by the
// loader via yaml.v3's strict decoding.
type IngredientRaw struct {
	Display       string   `yaml:"display"`
	Unit          string   `yaml:"unit"`
	Section       string   `yaml:"section"`
	Kind          string   `yaml:"kind"`
	DefaultQtyG   *float64 `yaml:"default_qty_g"`
	MaxTimesWeek  *int     `yaml:"max_times_week"`
}

// Catalog is the validated, immutable handle produced by the
// cross-validator (spec §4.1). Downstream phases borrow it by
// reference; nothing mutates it after loader.Load returns.
type Catalog struct {
	Ingredients map[string]Ingredient
	Recipes     map[string]Recipe
	// RecipeOrder is the deterministic order recipes were loaded in
	// (sorted by source filename), used to seed canonical variant-table
	// insertion order (spec §9 "Canonical order").
	RecipeOrder []string
	Rules       Rules
	Pantry      Pantry
}
