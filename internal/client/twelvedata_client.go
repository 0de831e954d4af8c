package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yarklimoff/stock-monitor/internal/config"
	"github.com/yarklimoff/stock-monitor/internal/model"

	"go.uber.org/zap"
)

const defaultProviderTimeout = 10 * time.Second

// TwelveDataClient handles communication with the Twelve Data API
type TwelveDataClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTwelveDataClient creates a new Twelve Data API client
func NewTwelveDataClient(cfg config.ProviderConfig, logger *zap.Logger) *TwelveDataClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &TwelveDataClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetQuote retrieves the current quote for a symbol. The provider reports
// most errors inside a 2xx payload; those are returned to the caller as part
// of the decoded TwelveDataQuote.
func (c *TwelveDataClient) GetQuote(ctx context.Context, symbol string) (*model.TwelveDataQuote, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/quote?%s", c.baseURL, params.Encode())

	body, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var quote model.TwelveDataQuote
	if err := json.Unmarshal(body, &quote); err != nil {
		c.logger.Error("Failed to decode quote response", zap.Error(err), zap.String("symbol", symbol))
		return nil, &model.TransportError{Message: "failed to decode quote response", Err: err}
	}

	return &quote, nil
}

// GetTimeSeries retrieves the recent time series for a symbol and returns the
// response body verbatim
func (c *TwelveDataClient) GetTimeSeries(ctx context.Context, symbol, interval string, outputSize int) ([]byte, error) {
	params := url.Values{}
	params.Add("symbol", symbol)
	params.Add("interval", interval)
	params.Add("outputsize", strconv.Itoa(outputSize))
	params.Add("apikey", c.apiKey)
	reqURL := fmt.Sprintf("%s/time_series?%s", c.baseURL, params.Encode())

	return c.get(ctx, reqURL)
}

func (c *TwelveDataClient) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &model.TransportError{Message: err.Error(), Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Provider request failed", zap.Error(err))
		return nil, &model.TransportError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &model.TransportError{Message: err.Error(), Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Error("Provider returned error status",
			zap.Int("statusCode", resp.StatusCode),
			zap.String("response", string(body)))
		return nil, &model.TransportError{
			StatusCode: resp.StatusCode,
			Message:    upstreamMessage(body, resp.StatusCode),
		}
	}

	return body, nil
}

// upstreamMessage extracts the structured provider message from an error
// body, falling back to a generic description of the status
func upstreamMessage(body []byte, statusCode int) string {
	var payload model.TwelveDataError
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("provider returned status %d", statusCode)
}
