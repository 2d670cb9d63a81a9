package commands

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mealplanner/internal/loader"
	"mealplanner/internal/planner"
	"mealplanner/internal/render"
	"mealplanner/internal/shopping"
	"mealplanner/internal/variants"
)

var generateSeed int64

var generatePlanCmd = &cobra.Command{
	Use:   "generate-plan <data_dir> <output_dir>",
	Short: "Solve a weekly plan and write plan.json and shopping_list.json",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, outputDir := args[0], args[1]
		seed := generateSeed
		if !cmd.Flags().Changed("seed") {
			seed = cfg.DefaultSeed
		}

		log.Info("loading data", zap.String("data_dir", dataDir))
		catalog, err := loader.Load(dataDir)
		if err != nil {
			log.Error("load failed", zap.Error(err))
			return failWith(err)
		}

		variantTable := variants.Expand(catalog)
		log.Info("expanded variants", zap.Int("count", len(variantTable)))

		log.Info("solving", zap.Int64("seed", seed))
		ctx, cancel := context.WithTimeout(context.Background(), cfg.SolverTimeout)
		defer cancel()

		assignments, err := planner.Run(ctx, catalog, variantTable, seed, cfg.SolverTimeout)
		if err != nil {
			log.Error("solve failed", zap.Error(err))
			return failWith(err)
		}
		log.Info("solution found")

		plan := render.BuildPlan(catalog, assignments, seed, time.Now().Format(time.RFC3339))
		list := shopping.Build(catalog, assignments)

		planBytes, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return failWith(err)
		}
		listBytes, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return failWith(err)
		}

		if err := writeOutputs(outputDir, planBytes, listBytes); err != nil {
			return failWith(err)
		}

		log.Info("wrote plan", zap.String("output_dir", outputDir))
		return nil
	},
}

func init() {
	generatePlanCmd.Flags().Int64Var(&generateSeed, "seed", 42, "deterministic solver seed")
}

// writeOutputs writes both artifacts only once both are fully
// rendered in memory, so a failure never leaves a partial plan.json
// or shopping_list.json behind (spec §7).
func writeOutputs(outputDir string, planBytes, listBytes []byte) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	if err := writeAtomic(filepath.Join(outputDir, "plan.json"), planBytes); err != nil {
		return err
	}
	return writeAtomic(filepath.Join(outputDir, "shopping_list.json"), listBytes)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
