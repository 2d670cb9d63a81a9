package models

// Week describes the calendar shape of the plan being generated
// (spec §3): a list of day labels in schedule order and the meal
// types scheduled on each day.
type Week struct {
	Days  []string
	Meals []MealType
}

// DayCount returns the number of scheduled days.
func (w Week) DayCount() int {
	return len(w.Days)
}

// ProteinPortions maps protein -> meal -> grams, the table that
// resolves every "@portion" quantity in a recipe's ingredient list
// (spec §3, §4.3).
type ProteinPortions map[ProteinType]map[MealType]float64

// Lookup returns the portion size in grams for a protein/meal pair.
// Callers must only invoke this after the cross-validator has
// confirmed coverage for every (protein, meal) pair a recipe needs
// (spec §4.1).
func (p ProteinPortions) Lookup(protein ProteinType, meal MealType) (float64, bool) {
	byMeal, ok := p[protein]
	if !ok {
		return 0, false
	}
	g, ok := byMeal[meal]
	return g, ok
}

// MealRule is a per-meal-type policy flag (spec §3).
type MealRule struct {
	AllowCarbs bool
}

// CarbPortionsConfig mirrors rules.yml's carb_portions_g: block. Neither
// field is consulted when resolving a plan slot into ingredient
// quantities: a carb's grams always come from the ingredient's own
// DefaultQtyG. Overrides is parsed and referentially validated against
// the ingredient catalog; DefaultG is parsed only — see the "carb
// portion overrides" decision in DESIGN.md.
type CarbPortionsConfig struct {
	DefaultG  float64
	Overrides map[string]float64
}

// Constraints mirrors rules.yml's constraints: block (spec §3, §4.4-§4.5).
type Constraints struct {
	WeeklyProteinCounts       map[ProteinType]int
	NoConsecutiveSameProtein  bool
	FishDinnerMaxPerWeek      int
	FishDinnerMaxConsecutive  int
	MaxRecipeUsesPerWeek      int
}

// Rules is the validated rules.yml document.
type Rules struct {
	Week            Week
	MealRules       map[MealType]MealRule
	ProteinPortions ProteinPortions
	CarbPortions    CarbPortionsConfig
	Constraints     Constraints
}

// WeekRaw mirrors rules.yml's week: block before validation.
type WeekRaw struct {
	Days  []string `yaml:"days"`
	Meals []string `yaml:"meals"`
}

// MealRuleRaw mirrors one entry of rules.yml's meal_rules: block.
type MealRuleRaw struct {
	AllowCarbs bool `yaml:"allow_carbs"`
}

// ConstraintsRaw mirrors rules.yml's constraints: block before validation.
type ConstraintsRaw struct {
	WeeklyProteinCounts      map[string]int `yaml:"weekly_protein_counts"`
	NoConsecutiveSameProtein bool           `yaml:"no_consecutive_same_protein"`
	FishDinnerMaxPerWeek     int            `yaml:"fish_dinner_max_per_week"`
	FishDinnerMaxConsecutive int            `yaml:"fish_dinner_max_consecutive"`
	MaxRecipeUsesPerWeek     int            `yaml:"max_recipe_uses_per_week"`
}

// CarbPortionsRaw mirrors rules.yml's carb_portions_g: block.
type CarbPortionsRaw struct {
	DefaultG  float64            `yaml:"default_g"`
	Overrides map[string]float64 `yaml:"overrides"`
}

// RulesRaw mirrors the whole rules.yml document before validation.
type RulesRaw struct {
	Week            WeekRaw                        `yaml:"week"`
	MealRules       map[string]MealRuleRaw         `yaml:"meal_rules"`
	ProteinPortions map[string]map[string]float64  `yaml:"protein_portions_g"`
	CarbPortionsG   CarbPortionsRaw                `yaml:"carb_portions_g"`
	Constraints     ConstraintsRaw                 `yaml:"constraints"`
}
