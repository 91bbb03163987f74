package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/difr/internal/render"
)

func schemaCmd() *cobra.Command {
	var validatePath string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the json report format",
		Long: `Print the JSON schema of the json report format, or validate a report against it.

Examples:
  difr schema                           # Print the schema
  difr schema --validate report.json    # Check a report produced with -f json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if validatePath == "" {
				_, err := cmd.OutOrStdout().Write(render.Schema())

				return err
			}

			doc, err := os.ReadFile(filepath.Clean(validatePath))
			if err != nil {
				return fmt.Errorf("read %s: %w", validatePath, err)
			}

			err = render.ValidateJSON(doc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", validatePath)

			return nil
		},
	}

	cmd.Flags().StringVar(&validatePath, "validate", "", "validate this JSON report instead of printing the schema")

	return cmd
}
