package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVParser parses people from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed people.
// Expected columns: family_name, given_name, plus any of family_name_kana,
// given_name_kana, nickname, gender, blood_type, status, birth_date,
// first_met, groups, notes.
func (p *CSVParser) Parse(r io.Reader) ([]RawPerson, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}

	requiredCols := []string{"family_name", "given_name"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawPersons.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawPerson, error) {
	var people []RawPerson
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		people = append(people, parseRecord(record, colIndex, lineNum))
	}

	return people, nil
}

// parseRecord converts a CSV record to a RawPerson.
func parseRecord(record []string, colIndex map[string]int, lineNum int) RawPerson {
	return RawPerson{
		ID:             getColumn(record, colIndex, "id"),
		FamilyName:     getColumn(record, colIndex, "family_name"),
		GivenName:      getColumn(record, colIndex, "given_name"),
		FamilyNameKana: getColumn(record, colIndex, "family_name_kana"),
		GivenNameKana:  getColumn(record, colIndex, "given_name_kana"),
		Nickname:       getColumn(record, colIndex, "nickname"),
		Gender:         getColumn(record, colIndex, "gender"),
		BloodType:      getColumn(record, colIndex, "blood_type"),
		Status:         getColumn(record, colIndex, "status"),
		BirthDate:      getColumn(record, colIndex, "birth_date"),
		FirstMet:       getColumn(record, colIndex, "first_met"),
		Groups:         getColumn(record, colIndex, "groups"),
		Notes:          getColumn(record, colIndex, "notes"),
		LineNum:        lineNum,
	}
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
