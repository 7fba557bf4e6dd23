package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/animeaux/animeaux/internal/jobs"
)

// Bumper invalidates the list cache.
type Bumper interface {
	Bump(ctx context.Context) (int64, error)
}

// BumpCacheJob bumps the list cache version after data imports.
type BumpCacheJob struct {
	Cache   Bumper
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewBumpCacheJob wires the bump handler.
func NewBumpCacheJob(cache Bumper, logger *slog.Logger, metrics *jobmetrics.Metrics) *BumpCacheJob {
	return &BumpCacheJob{Cache: cache, Logger: logger, Metrics: metrics}
}

// Handle processes TaskBumpCache tasks.
func (j *BumpCacheJob) Handle(ctx context.Context, t *asynq.Task) (resultErr error) {
	if j == nil || j.Cache == nil {
		return errors.New("bump cache: handler not configured")
	}
	var payload BumpCachePayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}

	metrics := j.Metrics
	if metrics == nil {
		metrics = defaultJobMetrics
	}
	tracker := metrics.Track(TaskBumpCache)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	version, err := j.Cache.Bump(ctx)
	if err != nil {
		logger.Error("bump list cache", slog.String("reason", payload.Reason), slog.Any("error", err))
		return err
	}
	logger.Info("bumped list cache", slog.String("reason", payload.Reason), slog.Int64("version", version))
	return nil
}
