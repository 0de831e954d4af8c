package model

// TwelveDataQuote is the raw quote payload returned by the provider.
// The provider reports most errors with HTTP 200 and status=="error", so the
// error envelope fields live on the same struct as the quote fields.
type TwelveDataQuote struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Open          string `json:"open"`
	Close         string `json:"close"`
	PercentChange string `json:"percent_change"`

	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TwelveDataError is the structured error envelope the provider attaches to
// non-2xx responses.
type TwelveDataError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// TimeSeriesValue is a single point of the daily time series, kept as the
// provider sends it
type TimeSeriesValue struct {
	Datetime string `json:"datetime"`
	Close    string `json:"close"`
}

// TimeSeries is the subset of the time-series payload the chart consumes.
// Values is newest-first and may be absent on provider-side errors; consumers
// must check for that.
type TimeSeries struct {
	Values []TimeSeriesValue `json:"values"`
	Status string            `json:"status"`
}
