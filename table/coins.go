package table

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Coin is a row of the live data worksheet as the frontend expects it.
type Coin struct {
	ID                       string  `json:"id" mapstructure:"coin_id"`
	Name                     string  `json:"name" mapstructure:"name"`
	Symbol                   string  `json:"symbol" mapstructure:"symbol"`
	CurrentPrice             float64 `json:"current_price" mapstructure:"current_price"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h" mapstructure:"price_change_24h"`
	MarketCap                float64 `json:"market_cap" mapstructure:"market_cap"`
	TotalVolume              float64 `json:"total_volume" mapstructure:"total_volume"`
	Image                    string  `json:"image" mapstructure:"image_url"`
	Trending                 bool    `json:"trending" mapstructure:"trending"`
	LastUpdated              string  `json:"last_updated" mapstructure:"timestamp"`
}

// Alert is a row of the alerts log worksheet.
type Alert struct {
	ID               string  `json:"id" mapstructure:"-"`
	CoinID           string  `json:"coin_id" mapstructure:"coin_id"`
	Name             string  `json:"name" mapstructure:"name"`
	Symbol           string  `json:"symbol" mapstructure:"symbol"`
	CurrentPrice     float64 `json:"current_price" mapstructure:"current_price"`
	PriceChange      float64 `json:"price_change" mapstructure:"price_change_24h"`
	AlertType        string  `json:"alert_type" mapstructure:"alert_type"`
	Severity         string  `json:"severity" mapstructure:"severity"`
	Timestamp        string  `json:"timestamp" mapstructure:"timestamp"`
	Image            string  `json:"image" mapstructure:"image_url"`
	NotificationSent string  `json:"notification_sent" mapstructure:"notification_sent"`
}

func Coins(t *Table) ([]Coin, error) {
	coins := []Coin{}
	for _, object := range t.Objects() {
		var coin Coin
		if err := decode(object, &coin); err != nil {
			return nil, err
		}

		coins = append(coins, coin)
	}

	return coins, nil
}

// Alerts returns the most recent n alerts, oldest first.
func Alerts(t *Table, n int) ([]Alert, error) {
	alerts := []Alert{}
	for _, object := range t.Last(n).Objects() {
		var alert Alert
		if err := decode(object, &alert); err != nil {
			return nil, err
		}

		alert.ID = fmt.Sprintf("alert-%v-%v", alert.CoinID, alert.Timestamp)
		alerts = append(alerts, alert)
	}

	return alerts, nil
}

var numeric = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// number parses the leading number of a formatted cell, so '-1.25%' is -1.25 and '67,012.50' is
// 67012.5. Anything else is 0.
func number(s string) float64 {
	prefix := numeric.FindString(strings.ReplaceAll(s, ",", ""))
	if prefix == "" {
		return 0
	}

	if f, err := strconv.ParseFloat(prefix, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}

	return 0
}

func decode(object map[string]string, v any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: cells,
		Result:     v,
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(object); err != nil {
		return fmt.Errorf("invalid row (%w)", err)
	}

	return nil
}

// cells converts sheet text to numbers and flags. Unparseable numbers are 0 and only 'true' is
// true, which is how the sheet has always been read.
func cells(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}

	s := strings.TrimSpace(data.(string))

	switch to.Kind() {
	case reflect.Float64:
		return number(s), nil

	case reflect.Bool:
		return s == "true", nil
	}

	return data, nil
}
