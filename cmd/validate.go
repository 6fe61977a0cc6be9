package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/librarian/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [catalog]",
	Short: "Validate a plain-text card catalog",
	Long: `Validate parses and normalizes the whole catalog without touching the database.
It reports format errors, duplicate names and aliases, unknown tags and tokens,
and cards missing the fields their type requires.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalogPath := args[0]

		tables, err := loadTables()
		if err != nil {
			return err
		}

		// Create validator and run validation
		v := validator.NewValidator(catalogPath, tables)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if results.Valid() {
			fmt.Printf("✅ Catalog '%s' is valid (%d cards).\n", catalogPath, results.Cards)
		} else {
			fmt.Printf("❌ Catalog '%s' has %d validation errors:\n", catalogPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
