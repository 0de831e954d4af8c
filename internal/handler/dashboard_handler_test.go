package handler

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yarklimoff/stock-monitor/internal/client"
	"github.com/yarklimoff/stock-monitor/internal/model"
	"github.com/yarklimoff/stock-monitor/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var dashboardQuotes = map[string]string{
	"AAPL": `{"symbol":"AAPL","name":"Apple Inc","price":192.42,"percent_change":1.22,"open":190.10}`,
	"TSLA": `{"symbol":"TSLA","name":"Tesla Inc","price":245.01,"percent_change":-2.35,"open":250.90}`,
}

func newDashboardRouter(t *testing.T, symbols []string) (*gin.Engine, *view.Dashboard) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/stock-data-timeline" {
			w.Write([]byte(`{"values":[{"datetime":"2025-08-22","close":"245.01"}],"status":"ok"}`))
			return
		}
		symbol := r.URL.Query().Get("symbol")
		payload, ok := dashboardQuotes[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintf(w, `{"error":"unknown symbol %s"}`, symbol)
			return
		}
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)

	api := client.NewStockAPIClient(server.URL, 2*time.Second, zap.NewNop())
	list := view.NewStockListView(api, symbols, time.Minute, zap.NewNop())
	chart := view.NewPriceChartView(api, "USD", 7, zap.NewNop())
	dashboard := view.NewDashboard(list, chart)
	if len(symbols) > 0 {
		list.Refresh(context.Background())
	}

	h := NewDashboardHandler(dashboard, zap.NewNop())
	router := gin.New()
	router.GET("/api/dashboard/stocks", h.GetStocks)
	router.POST("/api/dashboard/select", h.SelectStock)
	router.GET("/api/dashboard/chart", h.GetChart)
	return router, dashboard
}

func TestGetStocksRejectsUnknownDirection(t *testing.T) {
	router, _ := newDashboardRouter(t, nil)

	w := doRequest(router, "/api/dashboard/stocks?direction=sideways")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "direction")
}

func TestGetStocksRejectsUnknownSort(t *testing.T) {
	router, _ := newDashboardRouter(t, nil)

	w := doRequest(router, "/api/dashboard/stocks?sort=random")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStocksRendersRows(t *testing.T) {
	router, _ := newDashboardRouter(t, []string{"AAPL", "TSLA"})

	w := doRequest(router, "/api/dashboard/stocks")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"symbol":"AAPL"`)
	assert.Contains(t, body, `"price_display":"$192.42"`)
	assert.Contains(t, body, `"change_display":"+1.22%"`)
	assert.Contains(t, body, `"trend":"up"`)
	assert.Contains(t, body, `"change_display":"-2.35%"`)
	assert.Contains(t, body, `"trend":"down"`)
	assert.Contains(t, body, `"loading":false`)
	assert.Contains(t, body, `"notices":[]`)
}

func TestGetStocksAppliesQueryFilters(t *testing.T) {
	router, _ := newDashboardRouter(t, []string{"AAPL", "TSLA"})

	w := doRequest(router, "/api/dashboard/stocks?direction=down")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "TSLA")
	assert.NotContains(t, body, "AAPL")
}

func TestGetStocksReportsFailedSymbol(t *testing.T) {
	router, _ := newDashboardRouter(t, []string{"AAPL", "NOPE"})

	w := doRequest(router, "/api/dashboard/stocks")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"symbol":"NOPE"`)
	assert.Contains(t, body, `"level":"warning"`)
	assert.Contains(t, body, "Failed to load data for NOPE")
}

func TestRenderRowWithUnavailableValues(t *testing.T) {
	row := renderRow(model.Quote{
		Symbol:        "AAPL",
		Name:          "Apple Inc",
		Price:         math.NaN(),
		PercentChange: math.NaN(),
		Open:          math.NaN(),
	})

	assert.Nil(t, row.Price)
	assert.Nil(t, row.PercentChange)
	assert.Nil(t, row.Open)
	assert.Equal(t, "n/a", row.PriceDisplay)
	assert.Equal(t, "n/a", row.ChangeDisplay)
	assert.Equal(t, "flat", row.Trend)
}

func TestRenderRowDisplayFields(t *testing.T) {
	row := renderRow(model.Quote{Symbol: "AAPL", Price: 192.42, PercentChange: 1.22, Open: 190.10})
	assert.Equal(t, "$192.42", row.PriceDisplay)
	assert.Equal(t, "+1.22%", row.ChangeDisplay)
	assert.Equal(t, "up", row.Trend)

	row = renderRow(model.Quote{Symbol: "TSLA", Price: 245.01, PercentChange: -2.35, Open: 250.90})
	assert.Equal(t, "-2.35%", row.ChangeDisplay)
	assert.Equal(t, "down", row.Trend)
}

func TestSelectStockRequiresSymbol(t *testing.T) {
	router, _ := newDashboardRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/select", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSelectStockUpdatesSelectionAndChart(t *testing.T) {
	router, d := newDashboardRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/select", strings.NewReader(`{"symbol":"TSLA"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"selected":"TSLA"}`, w.Body.String())
	assert.Equal(t, "TSLA", d.Selected())

	require.Eventually(t, func() bool {
		return d.Chart.State() == view.ChartStateRendered
	}, 2*time.Second, 5*time.Millisecond)

	chartResp := doRequest(router, "/api/dashboard/chart")
	require.Equal(t, http.StatusOK, chartResp.Code)
	body := chartResp.Body.String()
	assert.Contains(t, body, `"state":"rendered"`)
	assert.Contains(t, body, `"symbol":"TSLA"`)
	assert.Contains(t, body, `"Price (TSLA)"`)
}

func TestGetChartBeforeAnySelection(t *testing.T) {
	router, _ := newDashboardRouter(t, nil)

	w := doRequest(router, "/api/dashboard/chart")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":"no_selection","symbol":"","chart":null}`, w.Body.String())
}
