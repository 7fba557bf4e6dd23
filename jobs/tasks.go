package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskWarmPresets loads the preset list pages into the list cache.
	TaskWarmPresets = "listcache:warm_presets"
	// TaskBumpCache invalidates every cached list page.
	TaskBumpCache = "listcache:bump"
)

// Cache entities the warm-up job knows about.
const (
	EntityAnimals    = "animals"
	EntityAdoption   = "adoption"
	EntityExhibitors = "exhibitors"
)

// AllEntities lists every entity warmed by default.
var AllEntities = []string{EntityAnimals, EntityAdoption, EntityExhibitors}

// WarmPresetsPayload selects the entities to warm. Empty means all.
type WarmPresetsPayload struct {
	Entities []string `json:"entities,omitempty"`
}

// NewWarmPresetsTask constructs a warm-up task.
func NewWarmPresetsTask(entities ...string) (*asynq.Task, error) {
	data, err := json.Marshal(WarmPresetsPayload{Entities: entities})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWarmPresets, data), nil
}

// BumpCachePayload records why the list cache was invalidated.
type BumpCachePayload struct {
	Reason string `json:"reason"`
}

// NewBumpCacheTask constructs a cache bump task.
func NewBumpCacheTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(BumpCachePayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskBumpCache, data), nil
}
