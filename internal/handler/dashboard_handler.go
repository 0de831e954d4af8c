package handler

import (
	"fmt"
	"math"
	"net/http"

	"github.com/yarklimoff/stock-monitor/internal/model"
	"github.com/yarklimoff/stock-monitor/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DashboardHandler exposes the dashboard view state to the browser
type DashboardHandler struct {
	dashboard *view.Dashboard
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *view.Dashboard, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		validate:  validator.New(),
		logger:    logger,
	}
}

type stockRowsQuery struct {
	Search    string `form:"search"`
	Direction string `form:"direction" validate:"omitempty,oneof=all up down"`
	Sort      string `form:"sort" validate:"omitempty,oneof=none asc desc"`
}

// stockRow is a roster row with the render-ready fields the table displays.
// Numeric fields are pointers so an unavailable value encodes as null.
type stockRow struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	PercentChange *float64 `json:"percent_change"`
	Open          *float64 `json:"open"`
	PriceDisplay  string   `json:"price_display"`
	ChangeDisplay string   `json:"change_display"`
	Trend         string   `json:"trend"`
}

// GetStocks handles rendering the filtered, sorted roster
// GET /api/dashboard/stocks
func (h *DashboardHandler) GetStocks(c *gin.Context) {
	var query stockRowsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.validate.Struct(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be one of all/up/down and sort one of none/asc/desc"})
		return
	}

	list := h.dashboard.List
	list.SetSearch(query.Search)
	if query.Direction != "" {
		list.SetDirection(view.Direction(query.Direction))
	}
	if query.Sort != "" {
		list.SetSort(view.SortOrder(query.Sort))
	}

	quotes := list.Rows()
	rows := make([]stockRow, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, renderRow(q))
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":    rows,
		"loading": list.Loading(),
		"notices": list.Notices(),
	})
}

// SelectStock handles a row click
// POST /api/dashboard/select
func (h *DashboardHandler) SelectStock(c *gin.Context) {
	var request struct {
		Symbol string `json:"symbol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.dashboard.Select(request.Symbol)
	c.JSON(http.StatusOK, gin.H{"selected": request.Symbol})
}

// GetChart handles rendering the price chart for the current selection
// GET /api/dashboard/chart
func (h *DashboardHandler) GetChart(c *gin.Context) {
	chart := h.dashboard.Chart
	c.JSON(http.StatusOK, gin.H{
		"state":  chart.State(),
		"symbol": chart.Symbol(),
		"chart":  chart.ChartConfig(),
	})
}

// renderRow precomputes the display fields the table shows. Unavailable
// values render as a placeholder rather than a number.
func renderRow(q model.Quote) stockRow {
	row := stockRow{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         finitePtr(q.Price),
		PercentChange: finitePtr(q.PercentChange),
		Open:          finitePtr(q.Open),
		PriceDisplay:  "n/a",
		ChangeDisplay: "n/a",
		Trend:         "flat",
	}

	if !math.IsNaN(q.Price) {
		row.PriceDisplay = fmt.Sprintf("$%.2f", q.Price)
	}
	if !math.IsNaN(q.PercentChange) {
		if q.PercentChange >= 0 {
			row.ChangeDisplay = fmt.Sprintf("+%.2f%%", q.PercentChange)
		} else {
			row.ChangeDisplay = fmt.Sprintf("%.2f%%", q.PercentChange)
		}
	}

	switch {
	case q.Price > q.Open:
		row.Trend = "up"
	case q.Price < q.Open:
		row.Trend = "down"
	}

	return row
}

func finitePtr(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
