package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/weatherpick/weatherpick/internal/advice"
	httpapi "github.com/weatherpick/weatherpick/internal/api/http"
	"github.com/weatherpick/weatherpick/internal/cache"
	"github.com/weatherpick/weatherpick/internal/config"
	"github.com/weatherpick/weatherpick/internal/scheduler"
	"github.com/weatherpick/weatherpick/internal/upstream"
	"github.com/weatherpick/weatherpick/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Process-wide caches, constructed once and injected explicitly.
	placeCache := cache.New[weather.GeocodedPlace](cfg.PlaceCacheSize, cfg.PlaceCacheTTL)
	addressCache := cache.New[string](cfg.AddressCacheSize, cfg.AddressCacheTTL)
	observationCache := cache.New[weather.ObservationSample](cfg.FeedCacheSize, cfg.FeedCacheTTL)
	forecastCache := cache.New[weather.ForecastSample](cfg.FeedCacheSize, cfg.FeedCacheTTL)
	adviceCache := cache.New[string](cfg.AdviceCacheSize, cfg.AdviceCacheTTL)

	// Upstream clients with resilience (backoff + circuit breaker).
	geocoder := upstream.NewGeocoderClient(httpClient, cfg.GeocoderBaseURL, cfg.GeocoderAPIKey)
	gridAPI := upstream.NewGridClient(httpClient, cfg.GridBaseURL, cfg.GridServiceKey)
	textgen := upstream.NewTextGenClient(httpClient, cfg.TextGenBaseURL, cfg.TextGenAPIKey, cfg.TextGenModel)

	// Core services.
	resolver := weather.NewResolver(geocoder, gridAPI, weather.ResolverCaches{
		Places:       placeCache,
		Addresses:    addressCache,
		Observations: observationCache,
		Forecasts:    forecastCache,
	})
	advisor := advice.NewGenerator(textgen, adviceCache)

	// Scheduler that periodically drops expired cache entries.
	sched := scheduler.New(cfg.SweepInterval, placeCache, addressCache, observationCache, forecastCache, adviceCache)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weatherpick",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weatherpick",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, resolver, advisor)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
