package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/hfsm/internal/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition>",
	Short: "Check a definition for consistency",
	Long:  `Builds the definition with the safety-checking builder and crawls every machine from its default state, reporting build errors and unreachable states.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := loadDefinition(cmd, args[0])
		if err != nil {
			return err
		}

		reports, err := validator.Validate(def)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		for _, r := range reports {
			fmt.Printf("%s: ok\n", r.Machine)
		}
		fmt.Println("Definition is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
