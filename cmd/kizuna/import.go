package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
)

func newImportCmd() *cobra.Command {
	var opts handlers.ImportOptions

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import people from a JSON or CSV file",
		Long: `Imports people in bulk. The format is detected from the file
extension; use --format to override. Records that fail validation are
skipped and reported, the rest still import.

Examples:
  kizuna import contacts.csv
  kizuna import backup.json --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Input format (json, csv); default is by extension")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Parse and validate without writing anything")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts handlers.ImportOptions) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Import.HandleImport(ctx, path, opts)
		if err != nil {
			return fmt.Errorf("importing people: %w", err)
		}

		if result.DryRun {
			fmt.Printf("Dry run: %d records would import, %d would be skipped.\n", result.Imported, result.Skipped)
		} else {
			fmt.Printf("Imported %d people, skipped %d.\n", result.Imported, result.Skipped)
		}

		for _, e := range result.Errors {
			fmt.Printf("  line %d (%s): %s\n", e.LineNum, e.Name, e.Message)
		}
		return nil
	})
}
