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

	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/app"
	"github.com/animeaux/animeaux/internal/exhibitors"
	jobmetrics "github.com/animeaux/animeaux/internal/jobs"
	"github.com/animeaux/animeaux/internal/listcache"
	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/platform/cache"
	"github.com/animeaux/animeaux/internal/platform/db"
	"github.com/animeaux/animeaux/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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
	queueOpts, err := cache.QueueOptions(cfg.RedisAddr)
	if err != nil {
		logger.Error("queue options", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()
	jobMetrics := jobmetrics.NewMetrics(metrics.Registerer())

	listCache := listcache.New(redisClient, cfg.ListCacheTTL)
	animalService := animals.NewService(animals.NewRepository(pool), listCache, logger)
	exhibitorService := exhibitors.NewService(exhibitors.NewRepository(pool), listCache, logger)

	warmJob := jobs.NewWarmPresetsJob(animalService, exhibitorService, logger, jobMetrics)
	bumpJob := jobs.NewBumpCacheJob(listCache, logger, jobMetrics)

	warmTask, err := jobs.NewWarmPresetsTask()
	if err != nil {
		logger.Error("build warm-up task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   queueOpts,
		Logger:      logger,
		Queue:       cfg.WorkerQueue,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskWarmPresets, Handler: warmJob.Handle},
			{Type: jobs.TaskBumpCache, Handler: bumpJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.PresetWarmupCron, Task: warmTask, Options: []asynq.Option{asynq.MaxRetry(1), asynq.Unique(time.Minute)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	metricsServer := &http.Server{
		Addr:              cfg.WorkerMetricsAddr,
		Handler:           metrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("starting worker metrics", slog.String("addr", cfg.WorkerMetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("worker metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
