// Package parsers provides parsers for importing people from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawPerson represents a person parsed from an external source before
// validation. Date fields stay strings here; the import handler parses them.
type RawPerson struct {
	ID             string `json:"id,omitempty"`
	FamilyName     string `json:"family_name"`
	GivenName      string `json:"given_name"`
	FamilyNameKana string `json:"family_name_kana,omitempty"`
	GivenNameKana  string `json:"given_name_kana,omitempty"`
	Nickname       string `json:"nickname,omitempty"`
	Gender         string `json:"gender,omitempty"`
	BloodType      string `json:"blood_type,omitempty"`
	Status         string `json:"status,omitempty"`
	BirthDate      string `json:"birth_date,omitempty"`
	FirstMet       string `json:"first_met,omitempty"`
	Groups         string `json:"groups,omitempty"`
	Notes          string `json:"notes,omitempty"`
	LineNum        int    `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing people from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawPerson, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
