package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/yarklimoff/stock-monitor/internal/client"
	"github.com/yarklimoff/stock-monitor/internal/config"
	"github.com/yarklimoff/stock-monitor/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTimelineServiceWithUpstream(t *testing.T, upstream http.HandlerFunc) *TimelineService {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	cfg := config.ProviderConfig{BaseURL: server.URL, APIKey: "test-key", Timeout: 2 * time.Second}
	return NewTimelineService(client.NewTwelveDataClient(cfg, zap.NewNop()), "1day", 7, zap.NewNop())
}

func TestGetTimelinePassesBodyThroughVerbatim(t *testing.T) {
	body := `{"meta":{"symbol":"AAPL","interval":"1day","currency":"USD"},"values":[` +
		`{"datetime":"2025-08-29","open":"191.00","close":"192.42"},` +
		`{"datetime":"2025-08-28","open":"189.20","close":"190.55"}],"status":"ok"}`

	svc := newTimelineServiceWithUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1day", r.URL.Query().Get("interval"))
		assert.Equal(t, "7", r.URL.Query().Get("outputsize"))
		w.Write([]byte(body))
	})

	got, err := svc.GetTimeline(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, []byte(body), got)
}

func TestGetTimelineDoesNotValidateSymbolPresence(t *testing.T) {
	var gotSymbol string
	svc := newTimelineServiceWithUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		gotSymbol = r.URL.Query().Get("symbol")
		w.Write([]byte(`{"code":400,"message":"symbol is missing","status":"error"}`))
	})

	// a provider-side error payload under HTTP 200 still passes through
	body, err := svc.GetTimeline(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotSymbol)
	assert.Contains(t, string(body), "symbol is missing")
}

func TestGetTimelineNormalizesUpstreamFailure(t *testing.T) {
	svc := newTimelineServiceWithUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":401,"message":"apikey is invalid","status":"error"}`))
	})

	_, err := svc.GetTimeline(context.Background(), "AAPL")
	require.Error(t, err)

	var transportErr *model.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusUnauthorized, transportErr.HTTPStatus())
	assert.Equal(t, "apikey is invalid", transportErr.Message)
}
