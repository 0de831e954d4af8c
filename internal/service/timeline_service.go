package service

import (
	"context"

	"github.com/yarklimoff/stock-monitor/internal/client"

	"go.uber.org/zap"
)

// TimelineService fetches a symbol's recent daily time series from the
// provider. The body passes through unmodified; consumers check the values
// field themselves.
type TimelineService struct {
	provider   *client.TwelveDataClient
	interval   string
	outputSize int
	logger     *zap.Logger
}

// NewTimelineService creates a new timeline service
func NewTimelineService(provider *client.TwelveDataClient, interval string, outputSize int, logger *zap.Logger) *TimelineService {
	return &TimelineService{
		provider:   provider,
		interval:   interval,
		outputSize: outputSize,
		logger:     logger,
	}
}

// GetTimeline returns the provider's time-series response body verbatim
func (s *TimelineService) GetTimeline(ctx context.Context, symbol string) ([]byte, error) {
	body, err := s.provider.GetTimeSeries(ctx, symbol, s.interval, s.outputSize)
	if err != nil {
		s.logger.Warn("Timeline request failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, err
	}
	return body, nil
}
