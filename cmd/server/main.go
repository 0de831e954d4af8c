package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/yarklimoff/stock-monitor/internal/client"
	"github.com/yarklimoff/stock-monitor/internal/config"
	"github.com/yarklimoff/stock-monitor/internal/handler"
	"github.com/yarklimoff/stock-monitor/internal/middleware"
	"github.com/yarklimoff/stock-monitor/internal/service"
	"github.com/yarklimoff/stock-monitor/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present so TWELVE_DATA_API_KEY can live there locally
	_ = godotenv.Load()

	// Load configuration
	cfgPath := os.Getenv("CONFIG_FILE")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	if cfg.Provider.APIKey == "" {
		logger.Warn("TWELVE_DATA_API_KEY is not set; quote requests will fail until it is configured")
	}

	// Initialize clients
	providerClient := client.NewTwelveDataClient(cfg.Provider, logger)

	apiBaseURL := cfg.Dashboard.APIBaseURL
	if apiBaseURL == "" {
		apiBaseURL = "http://localhost:" + cfg.Server.Port
	}
	stockAPIClient := client.NewStockAPIClient(apiBaseURL, cfg.Provider.Timeout, logger)

	// Initialize services
	quoteService := service.NewQuoteService(providerClient, cfg.Provider, logger)
	timelineService := service.NewTimelineService(
		providerClient,
		cfg.Dashboard.TimelineInterval,
		cfg.Dashboard.TimelineOutputSize,
		logger,
	)

	// Initialize views
	stockList := view.NewStockListView(
		stockAPIClient,
		cfg.Dashboard.Symbols,
		cfg.Dashboard.RefreshInterval,
		logger,
	)
	priceChart := view.NewPriceChartView(
		stockAPIClient,
		cfg.Dashboard.Currency,
		cfg.Dashboard.TimelineOutputSize,
		logger,
	)
	dashboard := view.NewDashboard(stockList, priceChart)

	// Initialize handlers
	stockHandler := handler.NewStockHandler(quoteService, timelineService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboard, logger)

	// Set up HTTP server with Gin
	router := setupRouter(stockHandler, dashboardHandler, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Start the dashboard refresh loop; it polls this server's own proxy
	// endpoints
	dashboardCtx, cancelDashboard := context.WithCancel(context.Background())
	dashboard.Start(dashboardCtx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	cancelDashboard()
	dashboard.Stop()

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func setupRouter(
	stockHandler *handler.StockHandler,
	dashboardHandler *handler.DashboardHandler,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Proxy endpoints consumed by the dashboard
	api := router.Group("/api")
	{
		api.GET("/stock-data", stockHandler.GetStockData)
		api.GET("/stock-data-timeline", stockHandler.GetStockTimeline)

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("/stocks", dashboardHandler.GetStocks)
			dashboard.POST("/select", dashboardHandler.SelectStock)
			dashboard.GET("/chart", dashboardHandler.GetChart)
		}
	}

	return router
}
