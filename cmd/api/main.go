package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/issue-tracker/internal/api/http"
	"github.com/spec-kit/issue-tracker/internal/api/http/handlers"
	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/config"
	"github.com/spec-kit/issue-tracker/internal/events"
	"github.com/spec-kit/issue-tracker/internal/observability"
	"github.com/spec-kit/issue-tracker/internal/persistence"
	"github.com/spec-kit/issue-tracker/internal/service"
	"github.com/spec-kit/issue-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	sentryEnabled := initSentry(cfg, logger)
	if sentryEnabled {
		defer sentry.Flush(2 * time.Second)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}
	store := pg.DocumentStore()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(dispatcher, redis, cfg.Redis.EventsChannel, logger)

	identity := service.NewIdentityService(logger)
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		Policy:     auth.DefaultPolicy(cfg.Auth.AdminRole),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	issueService := service.NewIssueService(service.IssueDependencies{
		Identity:   identity,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	var redisPinger handlers.Pinger
	if redis != nil {
		redisPinger = redis
	}

	metrics := observability.NewMetrics()
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, 0)
	app := httptransport.NewServer(httptransport.ServerConfig{
		AppName: cfg.App.Name,
		Middlewares: httptransport.MiddlewareConfig{
			Logger:  logger,
			Metrics: metrics,
			Timeout: cfg.App.RequestTimeout(),
			Sentry:  sentryEnabled,
		},
		Routes: httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, store, redisPinger).WithMetrics(metrics),
			Catalog:        handlers.NewCatalogHandler(store, catalogService),
			Issues:         handlers.NewIssuesHandler(store, issueService),
			Users:          handlers.NewUsersHandler(store, identity),
			AuthMiddleware: auth.NewAuthMiddleware(tokens),
		},
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}

func initSentry(cfg *config.Config, logger *zap.Logger) bool {
	if cfg.Sentry.DSN == "" {
		return false
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		EnableTracing:    true,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Environment:      cfg.App.Env,
		Release:          cfg.App.Version,
	})
	if err != nil {
		logger.Error("sentry init failed", zap.Error(err))
		return false
	}
	return true
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
