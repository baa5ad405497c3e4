// Package main is the entrypoint for the catalog API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/threetier/catalogapi/internal/cache"
	"github.com/threetier/catalogapi/internal/config"
	"github.com/threetier/catalogapi/internal/metrics"
	"github.com/threetier/catalogapi/internal/middleware"
	"github.com/threetier/catalogapi/internal/repository"
	"github.com/threetier/catalogapi/internal/server"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Database access. No connection is opened here; each request acquires
	// its own unless the pooled provider is enabled.
	dbOpts := cfg.DatabaseOptions()
	provider, err := repository.NewProvider(ctx, cfg.DBDriver, cfg.DBPoolEnabled, dbOpts)
	if err != nil {
		logger.Error("failed to initialize database provider",
			slog.String("error", sanitizeError(err, cfg.DBPassword)),
			slog.String("dsn", dbOpts.Redacted()),
		)
		os.Exit(1)
	}
	repo := repository.New(provider, cfg.DBQueryTimeout)
	logger.Info("database provider ready",
		"driver", cfg.DBDriver,
		"pooled", cfg.DBPoolEnabled,
		"dsn", dbOpts.Redacted(),
	)

	deps := server.RouterDeps{
		Logger:       logger,
		Catalog:      repo,
		Hostname:     hostname(),
		Environment:  cfg.AppEnv,
		Project:      cfg.ProjectName,
		DatabaseName: cfg.DBName,
		CORS:         corsConfig(cfg),
		Security:     middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()},
		RateLimit: middleware.RateLimitConfig{
			Enabled: cfg.RateLimitEnabled,
			RPS:     cfg.RateLimitRPS,
			Burst:   cfg.RateLimitBurst,
		},
	}

	// Redis is optional; without it rate limiting is a pass-through.
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL, cache.WithKeyPrefix(cfg.RedisKeyPrefix))
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		deps.Cache = cacheClient
		deps.RateLimiter = cacheClient
		logger.Info("connected to Redis")
	}

	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder, err := metrics.NewPrometheus(reg)
		if err != nil {
			logger.Error("failed to register metrics", "error", err)
			os.Exit(1)
		}
		deps.Recorder = recorder
		deps.Gatherer = reg
	}

	srv := server.New(server.NewRouter(deps), server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	srv.OnShutdown("database", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"project", cfg.ProjectName,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func corsConfig(cfg *config.Config) middleware.CORSConfig {
	c := middleware.DefaultCORSConfig()
	c.AllowedOrigins = cfg.GetCORSAllowedOrigins()
	return c
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	return parsed.Redacted()
}

// sanitizeError strips secrets from driver error messages before logging.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		msg = strings.ReplaceAll(msg, secret, "[redacted]")
	}
	return msg
}
