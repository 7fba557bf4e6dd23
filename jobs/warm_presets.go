package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/hibiken/asynq"

	"github.com/animeaux/animeaux/internal/adoption"
	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/exhibitors"
	jobmetrics "github.com/animeaux/animeaux/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// AnimalWarmer loads animal list pages into the cache.
type AnimalWarmer interface {
	Warm(ctx context.Context, params animals.SearchParams, limit int) error
}

// ExhibitorWarmer loads exhibitor list pages into the cache.
type ExhibitorWarmer interface {
	Warm(ctx context.Context, params exhibitors.SearchParams, limit int) error
}

// WarmPresetsJob loads the first page of every preset list so the common
// entry points are served from the cache.
type WarmPresetsJob struct {
	Animals    AnimalWarmer
	Exhibitors ExhibitorWarmer
	Logger     *slog.Logger
	Metrics    *jobmetrics.Metrics
	Timeout    time.Duration
}

// NewWarmPresetsJob wires dependencies for the warm-up handler.
func NewWarmPresetsJob(animalsSvc AnimalWarmer, exhibitorsSvc ExhibitorWarmer, logger *slog.Logger, metrics *jobmetrics.Metrics) *WarmPresetsJob {
	return &WarmPresetsJob{
		Animals:    animalsSvc,
		Exhibitors: exhibitorsSvc,
		Logger:     logger,
		Metrics:    metrics,
		Timeout:    20 * time.Second,
	}
}

// Handle processes TaskWarmPresets tasks.
func (j *WarmPresetsJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil {
		return errors.New("warm presets: handler not configured")
	}
	var payload WarmPresetsPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("warm presets: decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	entities := payload.Entities
	if len(entities) == 0 {
		entities = AllEntities
	}
	return j.Run(ctx, entities)
}

// Run warms the presets of entities. Every entity is attempted; failures are
// joined.
func (j *WarmPresetsJob) Run(ctx context.Context, entities []string) (resultErr error) {
	tracker := j.metrics().Track(TaskWarmPresets)
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	start := time.Now()
	var errs []error
	for _, entity := range entities {
		warmed, err := j.warmEntity(ctx, entity)
		j.metrics().AddWarmed(entity, warmed)
		if err != nil {
			logger.Error("warm entity", slog.String("entity", entity), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", entity, err))
			continue
		}
		logger.Debug("warmed entity", slog.String("entity", entity), slog.Int("pages", warmed))
	}
	logger.Info("completed preset warm-up", slog.Any("entities", entities), slog.Duration("duration", time.Since(start)))
	return errors.Join(errs...)
}

func (j *WarmPresetsJob) warmEntity(ctx context.Context, entity string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout())
	defer cancel()

	switch entity {
	case EntityAnimals:
		if j.Animals == nil {
			return 0, nil
		}
		return warmAll(ctx, animals.Presets(), animals.PerPage, j.Animals.Warm)
	case EntityAdoption:
		if j.Animals == nil {
			return 0, nil
		}
		params := []animals.SearchParams{adoption.ParseSearchParams(nil).AnimalParams()}
		return warmAll(ctx, params, adoption.PerPage, j.Animals.Warm)
	case EntityExhibitors:
		if j.Exhibitors == nil {
			return 0, nil
		}
		return warmAll(ctx, exhibitors.Presets(), exhibitors.PerPage, j.Exhibitors.Warm)
	default:
		return 0, fmt.Errorf("unknown entity %q", entity)
	}
}

func warmAll[P any](ctx context.Context, presets []P, limit int, warm func(context.Context, P, int) error) (int, error) {
	warmed := 0
	for _, p := range presets {
		if err := warm(ctx, p, limit); err != nil {
			return warmed, err
		}
		warmed++
	}
	return warmed, nil
}

func (j *WarmPresetsJob) timeout() time.Duration {
	if j.Timeout > 0 {
		return j.Timeout
	}
	return 20 * time.Second
}

func (j *WarmPresetsJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskWarmPresets))
	}
	return slog.Default().With(slog.String("job", TaskWarmPresets))
}

func (j *WarmPresetsJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

// ValidEntity reports whether entity can be warmed.
func ValidEntity(entity string) bool {
	return slices.Contains(AllEntities, entity)
}
