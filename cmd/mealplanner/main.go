// Command mealplanner validates a meal-planning data directory and
// generates a deterministic weekly plan and shopping list from it.
package main

import (
	"os"

	"mealplanner/cmd/mealplanner/commands"
)

func main() {
	os.Exit(commands.Execute())
}
