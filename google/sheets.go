// Package google fetches the price and alert worksheets, either through the Sheets API as a
// service account or from a published CSV export.
package google

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var spreadsheetURL = regexp.MustCompile(`^https://docs\.google\.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// SpreadsheetID accepts either a spreadsheet ID or a spreadsheet URL.
func SpreadsheetID(v string) (string, error) {
	v = strings.TrimSpace(v)

	if strings.HasPrefix(v, "https://") {
		match := spreadsheetURL.FindStringSubmatch(v)
		if len(match) < 2 || match[1] == "" {
			return "", fmt.Errorf("invalid spreadsheet URL - expected something like 'https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms'")
		}

		return match[1], nil
	}

	if v == "" {
		return "", fmt.Errorf("missing spreadsheet ID")
	}

	return v, nil
}

// NewSheets creates a Sheets client on top of an authenticated HTTP client. An empty endpoint
// selects the public Sheets API.
func NewSheets(ctx context.Context, client *http.Client, endpoint string) (*sheets.Service, error) {
	options := []option.ClientOption{
		option.WithHTTPClient(client),
	}

	if endpoint != "" {
		options = append(options, option.WithEndpoint(endpoint))
	}

	google, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	return google, nil
}

func GetSpreadsheet(ctx context.Context, google *sheets.Service, id string) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

// GetRows returns every populated row of the named worksheet.
func GetRows(ctx context.Context, google *sheets.Service, id string, title string) ([][]any, error) {
	response, err := google.Spreadsheets.Values.Get(id, A1(title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from sheet '%v' (%w)", title, err)
	}

	return response.Values, nil
}

// FindSheet returns the first worksheet matching one of the titles, in the order given. Titles
// are compared ignoring case and surrounding whitespace.
func FindSheet(spreadsheet *sheets.Spreadsheet, titles ...string) *sheets.Sheet {
	for _, title := range titles {
		for _, sheet := range spreadsheet.Sheets {
			if sheet.Properties != nil && strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(title)) {
				return sheet
			}
		}
	}

	return nil
}

func FirstSheet(spreadsheet *sheets.Spreadsheet) *sheets.Sheet {
	var first *sheets.Sheet
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties == nil {
			continue
		}

		if first == nil || sheet.Properties.Index < first.Properties.Index {
			first = sheet
		}
	}

	return first
}

// A1 quotes a worksheet title as an A1 range covering the whole sheet.
func A1(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func Title(spreadsheet *sheets.Spreadsheet) string {
	if spreadsheet.Properties != nil {
		return spreadsheet.Properties.Title
	}

	return ""
}
