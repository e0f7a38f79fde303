package ddf

import (
	"encoding/csv"
	"strings"

	"github.com/orthogram/orthogram/pkg/errors"
)

// parseCSVRows reads data as delimited rows (defaulting to ",") and
// returns them as a `rows` section. A lone rune in a field equal to the sentinel used for
// null markers by convention ("~" or empty) becomes an anonymous cell.
func parseCSVRows(data []byte, delimiter string) ([][]string, error) {
	d := ','
	if delimiter != "" {
		r := []rune(delimiter)
		if len(r) != 1 {
			return nil, errors.New(errors.CodeDefinition, "CSV delimiter must be a single character, got %q", delimiter)
		}
		d = r[0]
	}
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = d
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.CodeDefinition, err, "invalid CSV")
	}
	rows := make([][]string, len(records))
	for i, rec := range records {
		row := make([]string, len(rec))
		for j, cell := range rec {
			if cell == "~" {
				cell = ""
			}
			row[j] = cell
		}
		rows[i] = row
	}
	return rows, nil
}
