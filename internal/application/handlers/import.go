package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/domain/services"
	"github.com/ersonp/kizuna-core/internal/infrastructure/parsers"
)

// ImportHandler handles bulk person imports from external files.
type ImportHandler struct {
	people *services.PersonService
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(people *services.PersonService) *ImportHandler {
	return &ImportHandler{people: people}
}

// ImportOptions controls an import run. Format overrides the extension-based
// parser selection; DryRun parses and validates without writing anything.
type ImportOptions struct {
	Format string
	DryRun bool
}

// ImportError records a record that could not be imported.
type ImportError struct {
	LineNum int    `json:"line_num"`
	Name    string `json:"name,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	DryRun   bool          `json:"dry_run,omitempty"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// HandleImport parses the file and registers each person. Records that fail
// validation are skipped and reported; the rest still import.
func (h *ImportHandler) HandleImport(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	parser := h.parserFor(path, opts.Format)
	if parser == nil {
		return nil, fmt.Errorf("unsupported import format for %s (supported: json, csv)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return h.importFrom(ctx, f, parser, opts.DryRun)
}

func (h *ImportHandler) parserFor(path, format string) parsers.Parser {
	if format != "" {
		return parsers.ForFormat(format)
	}
	return parsers.ForFile(path)
}

func (h *ImportHandler) importFrom(ctx context.Context, r io.Reader, parser parsers.Parser, dryRun bool) (*ImportResult, error) {
	raws, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}

	result := &ImportResult{DryRun: dryRun}
	for _, raw := range raws {
		p, err := personFromRaw(raw)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{
				LineNum: raw.LineNum,
				Name:    raw.FamilyName + " " + raw.GivenName,
				Message: err.Error(),
			})
			continue
		}
		if !dryRun {
			if _, err := h.people.Create(ctx, p); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, ImportError{
					LineNum: raw.LineNum,
					Name:    p.DisplayName(),
					Message: err.Error(),
				})
				continue
			}
		}
		result.Imported++
	}
	return result, nil
}

func personFromRaw(raw parsers.RawPerson) (*entities.Person, error) {
	if raw.FamilyName == "" {
		return nil, &entities.ValidationError{Field: "family_name", Reason: "required"}
	}
	if raw.GivenName == "" {
		return nil, &entities.ValidationError{Field: "given_name", Reason: "required"}
	}
	birth, err := entities.ParsePartialDate(raw.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("birth date: %w", err)
	}
	firstMet, err := entities.ParsePartialDate(raw.FirstMet)
	if err != nil {
		return nil, fmt.Errorf("first met: %w", err)
	}

	return &entities.Person{
		FamilyName:     raw.FamilyName,
		GivenName:      raw.GivenName,
		FamilyNameKana: raw.FamilyNameKana,
		GivenNameKana:  raw.GivenNameKana,
		Nickname:       raw.Nickname,
		Gender:         raw.Gender,
		BloodType:      raw.BloodType,
		Status:         raw.Status,
		BirthDate:      birth,
		FirstMet:       firstMet,
		Groups:         entities.SplitGroups(raw.Groups),
		Notes:          raw.Notes,
	}, nil
}
