package google

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cryptowatch/crypto-sheets/table"
)

// FetchCSV downloads a published ('File > Share > Publish to web') worksheet in CSV format.
func FetchCSV(ctx context.Context, client *http.Client, url string) (*table.Table, error) {
	if client == nil {
		client = http.DefaultClient
	}

	rq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	response, err := client.Do(rq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}

	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("Google returned %v", response.Status)
	}

	return table.ParseCSV(response.Body)
}
