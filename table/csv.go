package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV builds a table from a published CSV export. Rows may be ragged.
func ParseCSV(f io.Reader) (*Table, error) {
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(strings.NewReader(strings.TrimSpace(string(b))))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV (%w)", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	rows := make([][]any, len(records))
	for i, record := range records {
		row := make([]any, len(record))
		for j, v := range record {
			row[j] = v
		}

		rows[i] = row
	}

	return MakeTable(rows)
}
