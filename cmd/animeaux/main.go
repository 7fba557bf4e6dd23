package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/animeaux/animeaux/internal/adoption"
	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/app"
	"github.com/animeaux/animeaux/internal/exhibitors"
	"github.com/animeaux/animeaux/internal/listcache"
	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/platform/cache"
	"github.com/animeaux/animeaux/internal/platform/db"
	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/internal/view"
	"github.com/animeaux/animeaux/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	listCache := listcache.New(redisClient, cfg.ListCacheTTL)
	if err := listCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("list cache invalidation listener", slog.Any("error", err))
	}

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}
	metrics := observability.NewMetrics()

	animalService := animals.NewService(animals.NewRepository(dbpool), listCache, logger)
	exhibitorService := exhibitors.NewService(exhibitors.NewRepository(dbpool), listCache, logger)

	queueOpts, err := cache.QueueOptions(cfg.RedisAddr)
	if err != nil {
		logger.Error("queue options", slog.Any("error", err))
		os.Exit(1)
	}
	inspector := asynq.NewInspector(queueOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		SessionManager:    sessionManager,
		AnimalsHandler:    animals.NewHandler(logger, animalService, templates, metrics),
		AdoptionHandler:   adoption.NewHandler(logger, animalService, templates, metrics),
		ExhibitorsHandler: exhibitors.NewHandler(logger, exhibitorService, templates, metrics),
		JobsHandler:       jobs.NewHandler(inspector, cfg.WorkerQueue, logger),
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
