package model

// ChartPoint is one point of a rendered price series
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is a price series in chronological order
type ChartSeries []ChartPoint

// ChartDataset describes one line of the chart in the shape the frontend
// chart renderer consumes
type ChartDataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BorderColor     string    `json:"borderColor"`
	BackgroundColor string    `json:"backgroundColor"`
	Tension         float64   `json:"tension"`
	PointRadius     int       `json:"pointRadius"`
}

// ChartOptions carries the axis and tooltip contract for the renderer
type ChartOptions struct {
	Title         string `json:"title"`
	MaxXTicks     int    `json:"maxXTicks"`
	YAxisTitle    string `json:"yAxisTitle"`
	TooltipSuffix string `json:"tooltipSuffix"`
}

// ChartConfig is the full render-ready chart payload
type ChartConfig struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Options  ChartOptions   `json:"options"`
}
