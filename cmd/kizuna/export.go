package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/kizuna-core/internal/application/handlers"
	"github.com/ersonp/kizuna-core/internal/domain/entities"
)

type exportFlags struct {
	format string
	output string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the directory to file",
		Long: `Exports everything recorded: people, relationships, questions,
interactions, life events and analysis notes. JSON exports the full
archive; CSV exports the people table only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !contains(validExportFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validExportFormats)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		doc, err := d.Export.HandleExport(ctx)
		if err != nil {
			return err
		}

		return writeExport(doc, flags)
	})
}

func writeExport(doc *handlers.ExportDocument, flags exportFlags) (err error) {
	var w io.Writer
	var f *os.File

	if flags.output != "" {
		f, err = os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	} else {
		w = os.Stdout
	}

	if err := formatExport(w, doc, flags.format); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if flags.output != "" {
		fmt.Printf("Exported %d people to %s\n", len(doc.People), flags.output)
	}

	return nil
}

func formatExport(w io.Writer, doc *handlers.ExportDocument, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	case "csv":
		return formatPeopleCSV(w, doc.People)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatPeopleCSV(w io.Writer, people []*entities.Person) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "family_name", "given_name", "family_name_kana", "given_name_kana",
		"nickname", "gender", "blood_type", "status", "birth_date", "first_met",
		"groups", "notes", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, p := range people {
		row := []string{
			p.ID,
			p.FamilyName,
			p.GivenName,
			p.FamilyNameKana,
			p.GivenNameKana,
			p.Nickname,
			p.Gender,
			p.BloodType,
			p.Status,
			p.BirthDate.String(),
			p.FirstMet.String(),
			entities.JoinGroups(p.Groups),
			p.Notes,
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
