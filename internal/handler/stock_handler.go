package handler

import (
	"net/http"

	"github.com/yarklimoff/stock-monitor/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StockHandler handles the proxy endpoints in front of the market data
// provider
type StockHandler struct {
	quoteService    *service.QuoteService
	timelineService *service.TimelineService
	logger          *zap.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(quoteService *service.QuoteService, timelineService *service.TimelineService, logger *zap.Logger) *StockHandler {
	return &StockHandler{
		quoteService:    quoteService,
		timelineService: timelineService,
		logger:          logger,
	}
}

// GetStockData handles retrieving a single symbol's current quote
// GET /api/stock-data
func (h *StockHandler) GetStockData(c *gin.Context) {
	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetStockTimeline handles retrieving a symbol's recent daily time series.
// The provider's body is forwarded byte for byte on success.
// GET /api/stock-data-timeline
func (h *StockHandler) GetStockTimeline(c *gin.Context) {
	body, err := h.timelineService.GetTimeline(c.Request.Context(), c.Query("symbol"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
