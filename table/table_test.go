package table

import (
	"reflect"
	"testing"
)

func TestMakeTable(t *testing.T) {
	expected := Table{
		Header: []string{"coin_id", "name", "current_price", "price_change_24h"},
		Records: [][]string{
			{"bitcoin", "Bitcoin", "67012.5", "-1.25"},
			{"ethereum", "Ethereum", "3120.75", "2.5"},
		},
	}

	var data = [][]any{
		{"Coin ID", "Name", "Current Price", "Price  Change 24h"},
		{"bitcoin", "Bitcoin", "67012.5", "-1.25"},
		{"ethereum", " Ethereum ", "3120.75", "2.5"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if table == nil {
		t.Fatalf("MakeTable returned %v", table)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableWithShortRows(t *testing.T) {
	expected := Table{
		Header: []string{"coin_id", "name", "symbol"},
		Records: [][]string{
			{"bitcoin", "", ""},
			{"ethereum", "Ethereum", "ETH"},
		},
	}

	var data = [][]any{
		{"Coin ID", "Name", "Symbol"},
		{"bitcoin"},
		{"ethereum", "Ethereum", "ETH", "ignored"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableWithNonStringCells(t *testing.T) {
	expected := Table{
		Header:  []string{"coin_id", "current_price", "trending"},
		Records: [][]string{{"bitcoin", "67012.5", "true"}},
	}

	var data = [][]any{
		{"coin_id", "current_price", "trending"},
		{"bitcoin", 67012.5, true},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if !reflect.DeepEqual(*table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, *table)
	}
}

func TestMakeTableSkipsBlankRows(t *testing.T) {
	var data = [][]any{
		{"coin_id", "name"},
		{"bitcoin", "Bitcoin"},
		{"", " "},
		{},
		{"ethereum", "Ethereum"},
	}

	table, err := MakeTable(data)
	if err != nil {
		t.Fatalf("Unexpected error returned from MakeTable (%v)", err)
	}

	if len(table.Records) != 2 {
		t.Errorf("Expected 2 records, got %v", len(table.Records))
	}
}

func TestMakeTableWithEmptySheet(t *testing.T) {
	var data = [][]any{}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for empty sheet, got %v", err)
	}
}

func TestMakeTableWithoutHeaders(t *testing.T) {
	data := [][]any{
		{},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for missing headers, got %v", err)
	}
}

func TestMakeTableWithDuplicatedColumn(t *testing.T) {
	var data = [][]any{
		{"Coin ID", "Name", "coin id"},
		{"bitcoin", "Bitcoin", "btc"},
	}

	_, err := MakeTable(data)
	if err == nil {
		t.Fatalf("Expected error return for duplicated column, got %v", err)
	}
}

func TestObjects(t *testing.T) {
	expected := []map[string]string{
		{"coin_id": "bitcoin", "name": "Bitcoin"},
		{"coin_id": "ethereum", "name": ""},
	}

	table := Table{
		Header: []string{"coin_id", "name"},
		Records: [][]string{
			{"bitcoin", "Bitcoin"},
			{"ethereum", ""},
		},
	}

	if objects := table.Objects(); !reflect.DeepEqual(objects, expected) {
		t.Errorf("Incorrect objects\n   expected: %v\n   got:      %v\n", expected, objects)
	}
}

func TestLast(t *testing.T) {
	table := Table{
		Header:  []string{"n"},
		Records: [][]string{{"1"}, {"2"}, {"3"}, {"4"}},
	}

	tests := []struct {
		n        int
		expected [][]string
	}{
		{2, [][]string{{"3"}, {"4"}}},
		{4, [][]string{{"1"}, {"2"}, {"3"}, {"4"}}},
		{10, [][]string{{"1"}, {"2"}, {"3"}, {"4"}}},
		{0, [][]string{}},
	}

	for _, test := range tests {
		if last := table.Last(test.n); !reflect.DeepEqual(last.Records, test.expected) {
			t.Errorf("Incorrect Last(%v)\n   expected: %v\n   got:      %v\n", test.n, test.expected, last.Records)
		}
	}
}

func TestKey(t *testing.T) {
	tests := map[string]string{
		"Coin ID":           "coin_id",
		"  Current Price  ": "current_price",
		"price\tchange 24h": "price_change_24h",
		"symbol":            "symbol",
	}

	for v, expected := range tests {
		if k := Key(v); k != expected {
			t.Errorf("Incorrect key for '%v' - expected:%v, got:%v", v, expected, k)
		}
	}
}
