package table

import (
	"fmt"
	"regexp"
	"strings"
)

// Table is a worksheet reduced to a header of normalised column keys and the rows beneath it.
type Table struct {
	Header  []string
	Records [][]string
}

var whitespace = regexp.MustCompile(`\s+`)

// MakeTable builds a table from the rows returned by the Sheets API. The first row is the header.
// Short rows are padded with empty cells and cells beyond the header are dropped.
func MakeTable(rows [][]any) (*Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("Empty sheet")
	}

	// ... header
	header, err := makeHeader(rows[0])
	if err != nil {
		return nil, err
	}

	// ... records
	records := [][]string{}
	for _, row := range rows[1:] {
		record := make([]string, len(header))
		blank := true
		for i := range header {
			if i < len(row) && row[i] != nil {
				record[i] = clean(fmt.Sprint(row[i]))
			}

			blank = blank && record[i] == ""
		}

		if !blank {
			records = append(records, record)
		}
	}

	return &Table{
		Header:  header,
		Records: records,
	}, nil
}

func makeHeader(row []any) ([]string, error) {
	header := []string{}
	index := map[string]bool{}

	for _, v := range row {
		var k string
		if v != nil {
			k = Key(fmt.Sprint(v))
		}

		if k != "" && index[k] {
			return nil, fmt.Errorf("Duplicate column name '%v'", v)
		}

		index[k] = true
		header = append(header, k)
	}

	// ... trailing empty header cells are formatting, not columns
	for len(header) > 0 && header[len(header)-1] == "" {
		header = header[:len(header)-1]
	}

	if len(header) == 0 {
		return nil, fmt.Errorf("Missing/invalid header row")
	}

	return header, nil
}

// Objects returns each record as a map of header key to cell.
func (t *Table) Objects() []map[string]string {
	objects := make([]map[string]string, 0, len(t.Records))

	for _, record := range t.Records {
		object := map[string]string{}
		for i, k := range t.Header {
			if k != "" {
				object[k] = record[i]
			}
		}

		objects = append(objects, object)
	}

	return objects
}

// Last returns a table holding at most the last n records.
func (t *Table) Last(n int) *Table {
	records := t.Records
	if n >= 0 && len(records) > n {
		records = records[len(records)-n:]
	}

	return &Table{
		Header:  t.Header,
		Records: records,
	}
}

// Key normalises a column title: 'Current Price' becomes 'current_price'.
func Key(v string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(v)), "_")
}

func clean(v string) string {
	return strings.TrimSpace(v)
}
