package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"groupapi/internal/auth"
	"groupapi/internal/config"
	"groupapi/internal/database"
	"groupapi/internal/database/migration"
	handlers "groupapi/internal/http/handler"
	"groupapi/internal/http/middleware"
	"groupapi/internal/logger"
	"groupapi/internal/otel"
	"groupapi/internal/repository/postgres"
	"groupapi/internal/service"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	// Configuration comes from the environment; .env is auto-loaded if present.
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Error("failed to initialize tracing", zap.Error(err))
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
			return err
		}
	}

	stores := postgres.NewStores(db)
	limits := service.Limits{Default: cfg.Pagination.DefaultLimit, Maximum: cfg.Pagination.MaximumLimit}
	tokens := auth.NewTokenManager(cfg.JWT)

	users := service.NewUserService(stores.Users, limits, log)
	groups := service.NewGroupService(stores.Groups, stores.Members, limits, log)
	svc := handlers.Services{
		Auth:         service.NewAuthService(users, tokens, log),
		User:         users,
		Group:        groups,
		GroupRequest: service.NewGroupRequestService(stores.Requests, stores.Users, stores.Groups, stores.Members, groups, limits, log),
		Label:        service.NewLabelService(stores.Labels, limits, log),
		GroupLabel:   service.NewGroupLabelService(stores.GroupLabels, groups, limits, log),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Error("failed to register metrics", zap.Error(err))
		return err
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	// RequestID must run before the access log so entries carry the ID.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(metrics.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, db, svc)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.Environment))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(sctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		log.Error("graceful shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
