package cmd

import (
	"fmt"

	"variation-manager/core/matrix"

	"github.com/spf13/cobra"
)

var generateFacets string

// generateCmd prints the blank matrix of a facet file.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print every combination of a facet file",
	Long: `Reads a YAML facet file and prints the generated combinations as JSON.

Example:
  generate --facets shirt.yaml > shirt.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		facets, err := loadFacets(generateFacets)
		if err != nil {
			return err
		}
		if err := writeJSON(cmd.OutOrStdout(), matrix.Generate(facets)); err != nil {
			return fmt.Errorf("failed to write combinations: %w", err)
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateFacets, "facets", "", "Path to the YAML facet file")
	_ = generateCmd.MarkFlagRequired("facets")
	RootCmd.AddCommand(generateCmd)
}
