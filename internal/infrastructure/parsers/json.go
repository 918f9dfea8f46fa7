package parsers

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONParser parses a JSON array of people.
type JSONParser struct{}

// Parse decodes the array element by element so a malformed record is
// reported with its position instead of failing the whole document opaquely.
// LineNum carries the 1-based array index.
func (p *JSONParser) Parse(r io.Reader) ([]RawPerson, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("parsing JSON: expected an array of people, got %v", tok)
	}

	people := []RawPerson{}
	for dec.More() {
		var raw RawPerson
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing JSON record %d: %w", len(people)+1, err)
		}
		raw.LineNum = len(people) + 1
		people = append(people, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return people, nil
}
