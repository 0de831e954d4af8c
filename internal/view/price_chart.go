package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yarklimoff/stock-monitor/internal/client"
	"github.com/yarklimoff/stock-monitor/internal/model"

	"go.uber.org/zap"
)

// ChartState is the rendering state of the price chart
type ChartState string

const (
	ChartStateNoSelection ChartState = "no_selection"
	ChartStateLoading     ChartState = "loading"
	ChartStateRendered    ChartState = "rendered"
	ChartStateEmpty       ChartState = "empty"
)

// Line style carried over from the dashboard's chart renderer.
const (
	lineColor       = "#4f46e5"
	fillColor       = "rgba(79, 70, 229, 0.2)"
	lineTension     = 0.3
	pointRadius     = 3
	maxXTicks       = 7
	dateLabelFormat = "Mon 2 Jan"
)

// PriceChartView renders a recent price history series for the selected
// symbol. Failures degrade to the empty state; the chart never surfaces raw
// errors to the user.
type PriceChartView struct {
	api      *client.StockAPIClient
	logger   *zap.Logger
	currency string
	points   int

	mu     sync.RWMutex
	state  ChartState
	symbol string
	series model.ChartSeries
}

// NewPriceChartView creates a price chart view charting the given number of
// most recent points
func NewPriceChartView(api *client.StockAPIClient, currency string, points int, logger *zap.Logger) *PriceChartView {
	return &PriceChartView{
		api:      api,
		logger:   logger,
		currency: currency,
		points:   points,
		state:    ChartStateNoSelection,
	}
}

// SetSymbol switches the chart to a new selection. An empty symbol clears
// the chart without issuing a request; otherwise the timeline is fetched in
// the background.
func (v *PriceChartView) SetSymbol(ctx context.Context, symbol string) {
	v.mu.Lock()
	v.symbol = symbol
	v.series = nil
	if symbol == "" {
		v.state = ChartStateNoSelection
		v.mu.Unlock()
		return
	}
	v.state = ChartStateLoading
	v.mu.Unlock()

	go v.load(ctx, symbol)
}

// load fetches the series and applies it unless the selection has moved on
// since the request was issued.
func (v *PriceChartView) load(ctx context.Context, symbol string) {
	series, ok := v.fetchSeries(ctx, symbol)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.symbol != symbol {
		// stale response for a previous selection
		return
	}
	if !ok {
		v.state = ChartStateEmpty
		return
	}
	v.series = series
	v.state = ChartStateRendered
}

func (v *PriceChartView) fetchSeries(ctx context.Context, symbol string) (model.ChartSeries, bool) {
	timeline, err := v.api.GetStockTimeline(ctx, symbol)
	if err != nil {
		v.logger.Error("Failed to load chart data", zap.String("symbol", symbol), zap.Error(err))
		return nil, false
	}

	if len(timeline.Values) == 0 {
		return nil, false
	}

	values := timeline.Values
	if len(values) > v.points {
		values = values[:v.points]
	}

	// provider returns newest first; reverse into chronological order
	series := make(model.ChartSeries, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		series = append(series, model.ChartPoint{
			Label: formatDateLabel(values[i].Datetime),
			Value: model.ParseNumeric(values[i].Close),
		})
	}

	return series, true
}

// State returns the current rendering state
func (v *PriceChartView) State() ChartState {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Symbol returns the currently selected symbol
func (v *PriceChartView) Symbol() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.symbol
}

// Series returns the chronological chart series, or nil when nothing is
// rendered
func (v *PriceChartView) Series() model.ChartSeries {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(model.ChartSeries, len(v.series))
	copy(out, v.series)
	return out
}

// ChartConfig builds the render-ready chart payload: one line series labeled
// with the symbol, x ticks capped, y axis and tooltip carrying the currency.
// Returns nil unless the chart is in the rendered state.
func (v *PriceChartView) ChartConfig() *model.ChartConfig {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.state != ChartStateRendered {
		return nil
	}

	labels := make([]string, len(v.series))
	data := make([]float64, len(v.series))
	for i, p := range v.series {
		labels[i] = p.Label
		data[i] = p.Value
	}

	return &model.ChartConfig{
		Labels: labels,
		Datasets: []model.ChartDataset{{
			Label:           fmt.Sprintf("Price (%s)", v.symbol),
			Data:            data,
			BorderColor:     lineColor,
			BackgroundColor: fillColor,
			Tension:         lineTension,
			PointRadius:     pointRadius,
		}},
		Options: model.ChartOptions{
			Title:         fmt.Sprintf("Price over the last week (%s)", v.symbol),
			MaxXTicks:     maxXTicks,
			YAxisTitle:    fmt.Sprintf("Price, %s", v.currency),
			TooltipSuffix: v.currency,
		},
	}
}

// formatDateLabel renders a provider datetime as a short weekday+day+month
// label. Unparseable datetimes fall back to the raw string.
func formatDateLabel(datetime string) string {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, datetime); err == nil {
			return t.Format(dateLabelFormat)
		}
	}
	return datetime
}
