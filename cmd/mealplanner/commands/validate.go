package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mealplanner/internal/loader"
)

var validateDataCmd = &cobra.Command{
	Use:   "validate-data <data_dir>",
	Short: "Parse and cross-validate a data directory without solving a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := args[0]

		log.Info("loading data", zap.String("data_dir", dataDir))
		catalog, err := loader.Load(dataDir)
		if err != nil {
			log.Error("validation failed", zap.Error(err))
			return failWith(err)
		}

		log.Info("validation passed",
			zap.Int("ingredients", len(catalog.Ingredients)),
			zap.Int("recipes", len(catalog.Recipes)),
			zap.Int("days", len(catalog.Rules.Week.Days)),
			zap.Int("meals", len(catalog.Rules.Week.Meals)),
			zap.Int("pantry_items", len(catalog.Pantry.Items)),
		)
		return nil
	},
}
