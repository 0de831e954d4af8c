package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the stock monitor
type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Dashboard DashboardConfig
	Logging   LoggingConfig
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port            string `validate:"required"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// ProviderConfig holds configuration for the upstream market data provider.
// APIKey comes from the TWELVE_DATA_API_KEY environment variable. An empty
// key is not a startup failure; the quote endpoint reports it per request.
type ProviderConfig struct {
	BaseURL string `validate:"required,url"`
	APIKey  string
	Timeout time.Duration
}

// DashboardConfig holds configuration for the dashboard view components
type DashboardConfig struct {
	APIBaseURL         string
	Symbols            []string `validate:"min=1"`
	RefreshInterval    time.Duration
	TimelineInterval   string `validate:"required"`
	TimelineOutputSize int    `validate:"gt=0"`
	Currency           string `validate:"required"`
}

// LoggingConfig holds logging specific configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadConfig loads the configuration from file and environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Environment variables override
	v.AutomaticEnv()
	_ = v.BindEnv("provider.apikey", "TWELVE_DATA_API_KEY")
	_ = v.BindEnv("server.port", "PORT")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "120s")
	v.SetDefault("server.shutdownTimeout", "10s")

	// Provider defaults
	v.SetDefault("provider.baseURL", "https://api.twelvedata.com")
	v.SetDefault("provider.apikey", "")
	v.SetDefault("provider.timeout", "10s")

	// Dashboard defaults
	v.SetDefault("dashboard.apiBaseURL", "")
	v.SetDefault("dashboard.symbols", []string{"AAPL", "MSFT", "GOOGL", "AMZN", "TSLA"})
	v.SetDefault("dashboard.refreshInterval", "60s")
	v.SetDefault("dashboard.timelineInterval", "1day")
	v.SetDefault("dashboard.timelineOutputSize", 7)
	v.SetDefault("dashboard.currency", "USD")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
