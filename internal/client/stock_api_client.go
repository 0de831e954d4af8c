package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/yarklimoff/stock-monitor/internal/model"

	"go.uber.org/zap"
)

// StockAPIClient is the HTTP client the dashboard views use to talk to the
// stock-data proxy endpoints
type StockAPIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStockAPIClient creates a new proxy endpoint client
func NewStockAPIClient(baseURL string, timeout time.Duration, logger *zap.Logger) *StockAPIClient {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &StockAPIClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetStockData retrieves the reshaped quote for a symbol
func (c *StockAPIClient) GetStockData(ctx context.Context, symbol string) (*model.Quote, error) {
	reqURL := fmt.Sprintf("%s/api/stock-data?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock data request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stock data request for %s returned status %d: %s",
			symbol, resp.StatusCode, decodeErrorBody(resp))
	}

	var quote model.Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to decode stock data response: %w", err)
	}

	return &quote, nil
}

// GetStockTimeline retrieves the recent daily time series for a symbol.
// The Values field may be empty when the provider degraded; callers must
// check it.
func (c *StockAPIClient) GetStockTimeline(ctx context.Context, symbol string) (*model.TimeSeries, error) {
	reqURL := fmt.Sprintf("%s/api/stock-data-timeline?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timeline request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("timeline request for %s returned status %d: %s",
			symbol, resp.StatusCode, decodeErrorBody(resp))
	}

	var series model.TimeSeries
	if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
		return nil, fmt.Errorf("failed to decode timeline response: %w", err)
	}

	return &series, nil
}

func decodeErrorBody(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return "no error details"
	}
	return payload.Error
}
