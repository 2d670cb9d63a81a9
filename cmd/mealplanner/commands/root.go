// Package commands wires the cobra command tree for the mealplanner
// CLI (spec §6 "Command surface").
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mealplanner/internal/config"
	"mealplanner/internal/logging"
	"mealplanner/internal/models"
)

var (
	cfg      *config.Config
	log      *logging.Logger
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:           "mealplanner",
	Short:         "Generate deterministic weekly meal plans from a rules-driven recipe catalog",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			exitCode = 2
			return err
		}
		cfg = loaded
		log = logging.New(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateDataCmd, generatePlanCmd)
}

// Execute runs the command tree and returns the process exit code
// per spec §6: 0 success, 1 validation/solver failure, 2 usage error.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if exitCode == 0 {
			exitCode = 2
		}
		fmt.Fprintln(os.Stderr, err)
	}
	return exitCode
}

// failWith records the exit code for a pipeline failure (spec §7):
// PlannerErrors map to 1, anything else defaults to 2.
func failWith(err error) error {
	var perr *models.PlannerError
	if errors.As(err, &perr) {
		exitCode = 1
	} else {
		exitCode = 2
	}
	return err
}
