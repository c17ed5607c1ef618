package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zoukba0014/personal-shopper-optimal/config"
	"github.com/zoukba0014/personal-shopper-optimal/internal/catalogcache"
	"github.com/zoukba0014/personal-shopper-optimal/internal/database"
	"github.com/zoukba0014/personal-shopper-optimal/internal/handlers"
	"github.com/zoukba0014/personal-shopper-optimal/internal/middleware"
	"github.com/zoukba0014/personal-shopper-optimal/internal/telemetry"
	"github.com/rs/zerolog"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting PSD-I skyline service...")

	ctx := context.Background()

	telemetryShutdown := telemetry.MustInit(ctx, telemetry.GetConfigFromEnv())
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetryShutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	// Connect to database
	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	loader := catalogcache.NewPgLoader(database.Pool())
	cache := catalogcache.NewStore(loader, nil, logger)
	handlers.InitSkylineHandlers(cache)

	// Warm up whatever regions are configured; an empty/unset warmup list
	// still opens the gate so the service can start and load regions lazily
	// via the refresh endpoint.
	if regions := os.Getenv("PSD_WARMUP_REGIONS"); regions != "" {
		go func() {
			if err := cache.Warmup(context.Background(), splitRegions(regions)); err != nil {
				logger.Warn().Err(err).Msg("warmup completed with errors")
			}
		}()
	} else {
		go cache.Warmup(context.Background(), nil)
	}

	// Set up Gin router
	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	setupMiddleware(router, logger)

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	// Skyline search routes (internal admin API)
	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	internal.Use(middleware.ServiceRateLimitMiddleware(50, 100)) // 50 req/s, burst 100
	{
		internal.GET("/health", handlers.HealthCheck)

		skylineGroup := internal.Group("/skyline")
		{
			skylineGroup.POST("/solve", handlers.SolveSkyline)
			skylineGroup.POST("/cache/warmup", handlers.WarmupCatalogue)
			skylineGroup.POST("/cache/refresh/:region", handlers.RefreshCatalogue)
			skylineGroup.GET("/cache/health", handlers.HealthCatalogue)
		}
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}

func splitRegions(csv string) []string {
	var regions []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if i > start {
				regions = append(regions, csv[start:i])
			}
			start = i + 1
		}
	}
	return regions
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()

	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		end := time.Now()
		latency := end.Sub(start)

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
