package view

import (
	"context"
	"sync"
)

// Dashboard is the parent component. It owns the current selection: the
// stock list emits a symbol upward through its callback and the selection
// flows down into the price chart.
type Dashboard struct {
	List  *StockListView
	Chart *PriceChartView

	mu       sync.RWMutex
	ctx      context.Context
	selected string
}

// NewDashboard wires the stock list's selection callback into the chart
func NewDashboard(list *StockListView, chart *PriceChartView) *Dashboard {
	d := &Dashboard{
		List:  list,
		Chart: chart,
		ctx:   context.Background(),
	}
	list.OnSelect(d.setSelected)
	return d
}

// Start begins the roster refresh loop
func (d *Dashboard) Start(ctx context.Context) {
	d.mu.Lock()
	d.ctx = ctx
	d.mu.Unlock()
	d.List.Start(ctx)
}

// Stop tears the refresh loop down
func (d *Dashboard) Stop() {
	d.List.Stop()
}

// Select is the row-click entry point
func (d *Dashboard) Select(symbol string) {
	d.List.Select(symbol)
}

// Selected returns the currently selected symbol, empty when none
func (d *Dashboard) Selected() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.selected
}

func (d *Dashboard) setSelected(symbol string) {
	d.mu.Lock()
	d.selected = symbol
	ctx := d.ctx
	d.mu.Unlock()

	d.Chart.SetSymbol(ctx, symbol)
}
