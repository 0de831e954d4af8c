package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yarklimoff/stock-monitor/internal/client"
	"github.com/yarklimoff/stock-monitor/internal/model"

	"go.uber.org/zap"
)

// Direction is the directional roster filter
type Direction string

const (
	DirectionAll  Direction = "all"
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// SortOrder is the percent-change column sort order
type SortOrder string

const (
	SortNone SortOrder = "none"
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// NoticeLevel distinguishes transient warnings from blocking errors
type NoticeLevel string

const (
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing message raised by a refresh cycle
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// StockListView maintains a live, filterable roster of quotes for a fixed
// set of symbols. It refreshes the whole roster on a fixed interval through
// the stock-data proxy, one parallel request per symbol.
type StockListView struct {
	api      *client.StockAPIClient
	logger   *zap.Logger
	symbols  []string
	interval time.Duration
	onSelect func(symbol string)

	mu        sync.RWMutex
	stocks    []model.Quote
	loading   bool
	notices   []Notice
	search    string
	direction Direction
	sortOrder SortOrder

	cancel context.CancelFunc
	done   chan struct{}
}

// NewStockListView creates a stock list view for the given roster of symbols
func NewStockListView(api *client.StockAPIClient, symbols []string, interval time.Duration, logger *zap.Logger) *StockListView {
	return &StockListView{
		api:       api,
		logger:    logger,
		symbols:   symbols,
		interval:  interval,
		direction: DirectionAll,
		sortOrder: SortNone,
	}
}

// OnSelect registers the parent callback fired when a row is selected
func (v *StockListView) OnSelect(fn func(symbol string)) {
	v.onSelect = fn
}

// Select emits the symbol of a clicked row to the parent
func (v *StockListView) Select(symbol string) {
	if v.onSelect != nil {
		v.onSelect(symbol)
	}
}

// Start runs an immediate refresh and then refreshes every interval until
// Stop or context cancellation
func (v *StockListView) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.done = make(chan struct{})

	go func() {
		defer close(v.done)

		v.Refresh(ctx)

		ticker := time.NewTicker(v.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				v.Refresh(ctx)
			}
		}
	}()
}

// Stop cancels the refresh loop and waits for it to exit
func (v *StockListView) Stop() {
	if v.cancel == nil {
		return
	}
	v.cancel()
	<-v.done
}

// Refresh fetches every roster symbol in parallel and swaps the roster in
// atomically. A failed symbol becomes a zero-valued placeholder row plus a
// warning notice; only a failure of the whole fan-out clears the roster.
func (v *StockListView) Refresh(ctx context.Context) {
	v.setLoading(true)
	defer v.setLoading(false)

	if err := ctx.Err(); err != nil {
		v.failRefresh(err)
		return
	}

	type result struct {
		index   int
		quote   model.Quote
		warning string
	}

	results := make([]model.Quote, len(v.symbols))
	ch := make(chan result, len(v.symbols))

	for i, symbol := range v.symbols {
		go func(i int, symbol string) {
			quote, err := v.api.GetStockData(ctx, symbol)
			if err != nil {
				v.logger.Warn("Failed to fetch quote",
					zap.String("symbol", symbol),
					zap.Error(err))
				ch <- result{
					index:   i,
					quote:   model.Quote{Symbol: symbol},
					warning: fmt.Sprintf("Failed to load data for %s", symbol),
				}
				return
			}
			ch <- result{index: i, quote: *quote}
		}(i, symbol)
	}

	var notices []Notice
	for range v.symbols {
		select {
		case <-ctx.Done():
			v.failRefresh(ctx.Err())
			return
		case r := <-ch:
			results[r.index] = r.quote
			if r.warning != "" {
				notices = append(notices, Notice{Level: NoticeWarning, Text: r.warning})
			}
		}
	}

	v.mu.Lock()
	v.stocks = results
	v.notices = notices
	v.mu.Unlock()
}

// SetSearch sets the case-insensitive symbol substring filter
func (v *StockListView) SetSearch(search string) {
	v.mu.Lock()
	v.search = search
	v.mu.Unlock()
}

// SetDirection sets the directional filter
func (v *StockListView) SetDirection(direction Direction) {
	v.mu.Lock()
	v.direction = direction
	v.mu.Unlock()
}

// SetSort sets the percent-change sort order
func (v *StockListView) SetSort(order SortOrder) {
	v.mu.Lock()
	v.sortOrder = order
	v.mu.Unlock()
}

// Rows applies the current filters and sort order to the roster and returns
// the visible rows. Filters compose conjunctively; the default order is the
// roster order.
func (v *StockListView) Rows() []model.Quote {
	v.mu.RLock()
	defer v.mu.RUnlock()

	search := strings.ToLower(v.search)
	rows := make([]model.Quote, 0, len(v.stocks))
	for _, s := range v.stocks {
		if v.direction == DirectionUp && !(s.Price > s.Open) {
			continue
		}
		if v.direction == DirectionDown && !(s.Price < s.Open) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(s.Symbol), search) {
			continue
		}
		rows = append(rows, s)
	}

	switch v.sortOrder {
	case SortAsc:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].PercentChange < rows[j].PercentChange
		})
	case SortDesc:
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].PercentChange > rows[j].PercentChange
		})
	}

	return rows
}

// Loading reports whether a refresh cycle is in flight
func (v *StockListView) Loading() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.loading
}

// Notices returns the messages raised by the last refresh cycle
func (v *StockListView) Notices() []Notice {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]Notice, len(v.notices))
	copy(out, v.notices)
	return out
}

// failRefresh handles a failure of the whole fan-out: the roster is cleared
// and a blocking notice replaces the transient warnings.
func (v *StockListView) failRefresh(err error) {
	v.logger.Error("Roster refresh aborted", zap.Error(err))
	v.mu.Lock()
	v.stocks = nil
	v.notices = []Notice{{Level: NoticeError, Text: "Failed to load stock data"}}
	v.mu.Unlock()
}

func (v *StockListView) setLoading(loading bool) {
	v.mu.Lock()
	v.loading = loading
	v.mu.Unlock()
}
