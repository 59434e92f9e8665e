// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/feedback-backend/internal/admin"
	"github.com/carterperez-dev/templates/feedback-backend/internal/auth"
	"github.com/carterperez-dev/templates/feedback-backend/internal/bootstrap"
	"github.com/carterperez-dev/templates/feedback-backend/internal/category"
	"github.com/carterperez-dev/templates/feedback-backend/internal/config"
	"github.com/carterperez-dev/templates/feedback-backend/internal/core"
	"github.com/carterperez-dev/templates/feedback-backend/internal/feedback"
	"github.com/carterperez-dev/templates/feedback-backend/internal/health"
	"github.com/carterperez-dev/templates/feedback-backend/internal/middleware"
	"github.com/carterperez-dev/templates/feedback-backend/internal/principal"
	"github.com/carterperez-dev/templates/feedback-backend/internal/server"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	generateKeys := flag.Bool(
		"generate-keys",
		false,
		"write a new ES256 key pair to the configured paths and exit",
	)
	flag.Parse()

	var err error
	if *generateKeys {
		err = writeKeys(*configPath)
	} else {
		err = run(*configPath)
	}

	if err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func writeKeys(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := auth.GenerateKeyPair(cfg.JWT.PrivateKeyPath, cfg.JWT.PublicKeyPath); err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	slog.Info("key pair written",
		"private_key", cfg.JWT.PrivateKeyPath,
		"public_key", cfg.JWT.PublicKeyPath,
	)
	return nil
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry", "error", err)
	} else if telemetry.Enabled() {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
			"sample_rate", core.SampleRate(cfg.Otel.SampleRate),
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		applied, migErr := db.Migrate(ctx)
		if migErr != nil {
			return migErr
		}
		logger.Info("schema migrations applied", "files", applied)
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
		"ttl", jwtManager.TokenTTL(),
	)

	principalSvc := principal.NewService(principal.NewRepository(db.DB))

	authSvc := auth.NewService(
		principalSvc,
		jwtManager,
		auth.NewRedisRevocationStore(redis.Client),
	)

	categorySvc := category.NewService(category.NewRepository(db.DB))
	categoryHandler := category.NewHandler(categorySvc)

	feedbackSvc := feedback.NewService(feedback.NewRepository(db.DB), categorySvc)
	feedbackHandler := feedback.NewHandler(feedbackSvc)

	seeder := bootstrap.NewService(authSvc, categorySvc, cfg.Bootstrap)
	authHandler := auth.NewHandler(authSvc, seeder)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		Feedback:   feedbackSvc,
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		Checks:     healthHandler.RunChecks,
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	globalLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		Scope:    "global",
		FailOpen: true,
	})
	defer globalLimiter.Close()

	writeLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.SubmitRequests,
			cfg.RateLimit.SubmitBurst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByIPAndRoute,
		Scope:    "write",
		FailOpen: true,
	})
	defer writeLimiter.Close()

	adminLimiter := middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
		Limit: middleware.PerWindow(
			cfg.RateLimit.Requests,
			cfg.RateLimit.Burst,
			cfg.RateLimit.Window,
		),
		KeyFunc:  middleware.KeyByPrincipal,
		Scope:    "admin",
		FailOpen: true,
	})
	defer adminLimiter.Close()

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Tracing)
	router.Use(middleware.Logger(logger))
	router.Use(globalLimiter.Handler)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(authSvc)
	adminOnly := chi.Chain(middleware.RequireAdmin, adminLimiter.Handler).Handler

	router.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator, writeLimiter.Handler)
		feedbackHandler.RegisterRoutes(r, writeLimiter.Handler)

		feedbackHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		categoryHandler.RegisterAdminRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
