package service

import (
	"context"
	"net/http"

	"github.com/yarklimoff/stock-monitor/internal/client"
	"github.com/yarklimoff/stock-monitor/internal/config"
	"github.com/yarklimoff/stock-monitor/internal/model"

	"go.uber.org/zap"
)

// QuoteService fetches a single symbol's quote from the provider and
// reshapes it for the dashboard
type QuoteService struct {
	provider *client.TwelveDataClient
	cfg      config.ProviderConfig
	logger   *zap.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(provider *client.TwelveDataClient, cfg config.ProviderConfig, logger *zap.Logger) *QuoteService {
	return &QuoteService{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// GetQuote validates the request, fetches the raw quote and reshapes it.
// Numeric fields are parsed from the provider's strings; unparseable values
// become NaN and render as null.
func (s *QuoteService) GetQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	if symbol == "" {
		return nil, &model.ValidationError{Message: "Symbol parameter is required"}
	}

	if s.cfg.APIKey == "" {
		return nil, &model.ConfigurationError{Message: "API key is not configured"}
	}

	raw, err := s.provider.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if raw.Status == "error" {
		message := raw.Message
		if message == "" {
			message = "API error"
		}
		code := raw.Code
		if code == 0 {
			code = http.StatusInternalServerError
		}
		s.logger.Warn("Provider rejected quote request",
			zap.String("symbol", symbol),
			zap.Int("code", code),
			zap.String("message", message))
		return nil, &model.UpstreamError{Code: code, Message: message}
	}

	return &model.Quote{
		Symbol:        raw.Symbol,
		Name:          raw.Name,
		Price:         model.ParseNumeric(raw.Close),
		PercentChange: model.ParseNumeric(raw.PercentChange),
		Open:          model.ParseNumeric(raw.Open),
	}, nil
}
