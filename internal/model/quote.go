package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Quote represents the reshaped quote returned by the stock-data endpoint
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PercentChange float64 `json:"percent_change"`
	Open          float64 `json:"open"`
}

// MarshalJSON renders non-finite numeric fields as null so an unparseable
// upstream value reaches the browser as "unavailable" instead of failing to
// encode.
func (q Quote) MarshalJSON() ([]byte, error) {
	type row struct {
		Symbol        string   `json:"symbol"`
		Name          string   `json:"name"`
		Price         *float64 `json:"price"`
		PercentChange *float64 `json:"percent_change"`
		Open          *float64 `json:"open"`
	}
	return json.Marshal(row{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         finiteOrNil(q.Price),
		PercentChange: finiteOrNil(q.PercentChange),
		Open:          finiteOrNil(q.Open),
	})
}

func finiteOrNil(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// ParseNumeric converts a provider-supplied numeric string to a float64.
// Unparseable input yields NaN, which Quote marshals as null.
func ParseNumeric(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
