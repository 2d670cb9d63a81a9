// Package loader reads a data directory of YAML files into a
// validated models.Catalog. It owns raw parsing (§6) and the
// cross-file referential integrity checks of §4.1; nothing downstream
// re-opens a file or re-checks a reference.
package loader

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"mealplanner/internal/models"
)

const (
	ingredientsFile = "ingredients.yml"
	rulesFile       = "rules.yml"
	pantryFile      = "pantry.yml"
	recipesDir      = "recipes"
)

// Load reads ingredients.yml, rules.yml, pantry.yml and every file in
// recipes/*.yml under dataDir, then cross-validates the result into a
// Catalog. Any failure returns a *models.PlannerError naming the
// offending entity (spec §4.1, §7).
func Load(dataDir string) (*models.Catalog, error) {
	ingredients, err := loadIngredients(filepath.Join(dataDir, ingredientsFile))
	if err != nil {
		return nil, err
	}

	rules, err := loadRules(filepath.Join(dataDir, rulesFile))
	if err != nil {
		return nil, err
	}

	pantry, err := loadPantry(filepath.Join(dataDir, pantryFile))
	if err != nil {
		return nil, err
	}

	recipes, order, err := loadRecipes(filepath.Join(dataDir, recipesDir))
	if err != nil {
		return nil, err
	}

	catalog := &models.Catalog{
		Ingredients: ingredients,
		Recipes:     recipes,
		RecipeOrder: order,
		Rules:       rules,
		Pantry:      pantry,
	}

	if err := crossValidate(catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

// decodeStrict decodes path into v, rejecting unknown fields (spec
// §6 "unknown top-level keys rejected").
func decodeStrict(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.NewError(models.MissingFile, path, "required input absent")
		}
		return models.WrapError(models.MissingFile, path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return models.WrapError(models.SchemaError, path, err)
	}
	return nil
}

func loadIngredients(path string) (map[string]models.Ingredient, error) {
	var raw map[string]models.IngredientRaw
	if err := decodeStrict(path, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]models.Ingredient, len(raw))
	for id, r := range raw {
		kind := models.IngredientKind(r.Kind)
		if !kind.Valid() {
			return nil, models.NewError(models.SchemaError, id, "unknown ingredient kind %q", r.Kind)
		}
		if kind != models.KindCarb && (r.DefaultQtyG != nil || r.MaxTimesWeek != nil) {
			return nil, models.NewError(models.SchemaError, id,
				"default_qty_g/max_times_week only apply to kind=CARB")
		}
		out[id] = models.Ingredient{
			ID:           id,
			Display:      r.Display,
			Unit:         r.Unit,
			Section:      r.Section,
			Kind:         kind,
			DefaultQtyG:  r.DefaultQtyG,
			MaxTimesWeek: r.MaxTimesWeek,
		}
	}
	return out, nil
}

func loadRules(path string) (models.Rules, error) {
	var raw models.RulesRaw
	if err := decodeStrict(path, &raw); err != nil {
		return models.Rules{}, err
	}

	week := models.Week{Days: raw.Week.Days}
	for _, m := range raw.Week.Meals {
		mt := models.MealType(m)
		if !mt.Valid() {
			return models.Rules{}, models.NewError(models.SchemaError, "rules.week.meals", "unknown meal type %q", m)
		}
		week.Meals = append(week.Meals, mt)
	}
	if len(week.Days) < 2 {
		return models.Rules{}, models.NewError(models.SchemaError, "rules.week.days", "must declare at least 2 days")
	}

	mealRules := make(map[models.MealType]models.MealRule, len(raw.MealRules))
	for m, r := range raw.MealRules {
		mt := models.MealType(m)
		if !mt.Valid() {
			return models.Rules{}, models.NewError(models.SchemaError, "rules.meal_rules", "unknown meal type %q", m)
		}
		mealRules[mt] = models.MealRule{AllowCarbs: r.AllowCarbs}
	}

	portions := make(models.ProteinPortions, len(raw.ProteinPortions))
	for p, byMeal := range raw.ProteinPortions {
		pt := models.ProteinType(p)
		if !pt.Valid() {
			return models.Rules{}, models.NewError(models.SchemaError, "rules.protein_portions_g", "unknown protein %q", p)
		}
		m := make(map[models.MealType]float64, len(byMeal))
		for meal, grams := range byMeal {
			mt := models.MealType(meal)
			if !mt.Valid() {
				return models.Rules{}, models.NewError(models.SchemaError, "rules.protein_portions_g", "unknown meal type %q", meal)
			}
			m[mt] = grams
		}
		portions[pt] = m
	}

	weeklyCounts := make(map[models.ProteinType]int, len(raw.Constraints.WeeklyProteinCounts))
	for p, c := range raw.Constraints.WeeklyProteinCounts {
		pt := models.ProteinType(p)
		if !pt.Valid() {
			return models.Rules{}, models.NewError(models.SchemaError, "rules.constraints.weekly_protein_counts", "unknown protein %q", p)
		}
		weeklyCounts[pt] = c
	}

	total := len(week.Days) * len(week.Meals)
	sum := 0
	for _, c := range weeklyCounts {
		sum += c
	}
	if sum != total {
		return models.Rules{}, models.NewError(models.RulesCoverageError, "rules.constraints.weekly_protein_counts",
			"sum to %d but should equal %d (%d days x %d meals)", sum, total, len(week.Days), len(week.Meals))
	}

	return models.Rules{
		Week:            week,
		MealRules:       mealRules,
		ProteinPortions: portions,
		CarbPortions: models.CarbPortionsConfig{
			DefaultG:  raw.CarbPortionsG.DefaultG,
			Overrides: raw.CarbPortionsG.Overrides,
		},
		Constraints: models.Constraints{
			WeeklyProteinCounts:      weeklyCounts,
			NoConsecutiveSameProtein: raw.Constraints.NoConsecutiveSameProtein,
			FishDinnerMaxPerWeek:     raw.Constraints.FishDinnerMaxPerWeek,
			FishDinnerMaxConsecutive: raw.Constraints.FishDinnerMaxConsecutive,
			MaxRecipeUsesPerWeek:     raw.Constraints.MaxRecipeUsesPerWeek,
		},
	}, nil
}

func loadPantry(path string) (models.Pantry, error) {
	var raw models.PantryRaw
	var items []string
	if err := decodeStrict(path, &items); err == nil {
		raw.Items = items
	} else {
		// Some pantry.yml files wrap the list under a top-level key;
		// retry against the structured form before giving up.
		if wrapErr := decodeStrict(path, &raw); wrapErr != nil {
			return models.Pantry{}, err
		}
	}

	set := make(map[string]struct{}, len(raw.Items))
	for _, id := range raw.Items {
		set[id] = struct{}{}
	}
	return models.Pantry{Items: set}, nil
}

func loadRecipes(dir string) (map[string]models.Recipe, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, models.NewError(models.MissingFile, dir, "recipes directory not found")
	}

	var filenames []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yml" {
			continue
		}
		filenames = append(filenames, e.Name())
	}
	sort.Strings(filenames)

	recipes := make(map[string]models.Recipe, len(filenames))
	order := make([]string, 0, len(filenames))

	for _, name := range filenames {
		path := filepath.Join(dir, name)
		var raw models.RecipeRaw
		if err := decodeStrict(path, &raw); err != nil {
			return nil, nil, err
		}

		recipe, err := buildRecipe(raw)
		if err != nil {
			return nil, nil, err
		}

		if _, exists := recipes[recipe.ID]; exists {
			return nil, nil, models.NewError(models.SchemaError, recipe.ID, "duplicate recipe ID")
		}
		recipes[recipe.ID] = recipe
		order = append(order, recipe.ID)
	}
	return recipes, order, nil
}

func buildRecipe(raw models.RecipeRaw) (models.Recipe, error) {
	if raw.ID == "" {
		return models.Recipe{}, models.NewError(models.SchemaError, "<recipe>", "missing id")
	}

	protein := models.ProteinType(raw.PrimaryProtein)
	if !protein.Valid() {
		return models.Recipe{}, models.NewError(models.SchemaError, raw.ID, "unknown primary_protein %q", raw.PrimaryProtein)
	}

	if len(raw.MealTypes) == 0 {
		return models.Recipe{}, models.NewError(models.SchemaError, raw.ID, "meal_types must be non-empty")
	}
	meals := make([]models.MealType, 0, len(raw.MealTypes))
	for _, m := range raw.MealTypes {
		mt := models.MealType(m)
		if !mt.Valid() {
			return models.Recipe{}, models.NewError(models.SchemaError, raw.ID, "unknown meal type %q", m)
		}
		meals = append(meals, mt)
	}

	strategy := models.CarbStrategy(raw.Carbs.Strategy)
	if !strategy.Valid() {
		return models.Recipe{}, models.NewError(models.SchemaError, raw.ID, "unknown carb strategy %q", raw.Carbs.Strategy)
	}

	ingredients := make([]models.RecipeIngredient, 0, len(raw.Ingredients))
	portionSeen := false
	for _, ri := range raw.Ingredients {
		qty, err := resolveQuantity(raw.ID, ri)
		if err != nil {
			return models.Recipe{}, err
		}
		if qty.Kind == models.QtyPortion {
			if portionSeen {
				return models.Recipe{}, models.NewError(models.SchemaError, raw.ID, "more than one @portion ingredient")
			}
			portionSeen = true
		}
		ingredients = append(ingredients, models.RecipeIngredient{Item: ri.Item, Quantity: qty})
	}
	if !portionSeen {
		return models.Recipe{}, models.NewError(models.SchemaError, raw.ID, "no @portion ingredient found")
	}

	return models.Recipe{
		ID:             raw.ID,
		Name:           raw.Name,
		MealTypes:      meals,
		PrimaryProtein: protein,
		Carbs: models.CarbPolicy{
			Strategy: strategy,
			Default:  raw.Carbs.Default,
			Allowed:  raw.Carbs.Allowed,
		},
		Ingredients: ingredients,
	}, nil
}

func resolveQuantity(recipeID string, ri models.RecipeIngredientRaw) (models.Quantity, error) {
	set := 0
	var q models.Quantity
	if ri.Qty == "@portion" {
		q = models.Quantity{Kind: models.QtyPortion}
		set++
	}
	if ri.QtyG != nil {
		q = models.Quantity{Kind: models.QtyGrams, Value: *ri.QtyG}
		set++
	}
	if ri.QtyML != nil {
		q = models.Quantity{Kind: models.QtyMillilitre, Value: *ri.QtyML}
		set++
	}
	if ri.QtyUnits != nil {
		q = models.Quantity{Kind: models.QtyUnits, Value: *ri.QtyUnits}
		set++
	}
	if set != 1 {
		return models.Quantity{}, models.NewError(models.SchemaError, recipeID,
			"ingredient %q must specify exactly one quantity form, found %d", ri.Item, set)
	}
	return q, nil
}
