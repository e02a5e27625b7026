package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Conceptual-Machines/gourmet-api/internal/api"
	"github.com/Conceptual-Machines/gourmet-api/internal/config"
	"github.com/Conceptual-Machines/gourmet-api/internal/logger"
	"github.com/Conceptual-Machines/gourmet-api/internal/metrics"
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

// buildMode, when set via ldflags, fixes the mode at build time and
// overrides ENVIRONMENT.
var buildMode = ""

// GetVersion returns the current release version
func GetVersion() string {
	return releaseVersion
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadConfig()
	logger.Setup(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			logger.Error("Refusing to start in production without an API key", err, logger.Fields{"mode": cfg.Environment.String()})
		}
		log.Fatal("Invalid configuration: ", err)
	}
	if cfg.HotpepperGourmetAPIKey == "" {
		logger.Warn("HOTPEPPER_GOURMET_API_KEY not set, serving an empty key", logger.Fields{"mode": cfg.Environment.String()})
	}

	if cfg.SentryDSN != "" {
		if err := initSentry(cfg); err != nil {
			logger.Warn("Failed to initialize Sentry", logger.Fields{"error": err.Error()})
		} else {
			logger.Info("Sentry initialized", logger.Fields{"environment": cfg.Environment.String(), "release": releaseVersion})
			defer sentry.Flush(sentryFlushTimeout)
		}
	} else {
		logger.Info("Sentry not configured (SENTRY_DSN not set)", nil)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	cloudwatch := metrics.NewClient(context.Background(), cfg.Environment.String(), cfg.CloudWatchEnabled)
	router := api.SetupRouter(cfg, GetVersion(), metrics.NewSentryMetrics(), cloudwatch)

	logger.Info("Starting server", logger.Fields{"port": cfg.Port, "mode": cfg.Environment.String()})
	if err := router.Run(":" + cfg.Port); err != nil {
		sentry.CaptureException(err)
		sentry.Flush(sentryFlushTimeout)
		log.Fatal("Failed to start server: ", err)
	}
}

func loadConfig() *config.Config {
	cfg := config.Load()
	if buildMode != "" {
		cfg = cfg.WithMode(config.ParseMode(buildMode))
	}
	return cfg
}

func initSentry(cfg *config.Config) error {
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment.String(),
		Release:          "gourmet-api@" + releaseVersion,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            !cfg.IsProduction(),
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
			}
			return event
		},
	})
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string)
	sensitiveKeys := map[string]bool{
		"authorization": true,
		"cookie":        true,
		"x-api-key":     true,
	}

	for k, v := range headers {
		if sensitiveKeys[strings.ToLower(k)] {
			filtered[k] = "[REDACTED]"
		} else {
			filtered[k] = v
		}
	}
	return filtered
}
