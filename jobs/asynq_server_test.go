package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (r *recordingEnqueuer) Close() error { return nil }

func TestClientEnqueuesTasks(t *testing.T) {
	rec := &recordingEnqueuer{}
	client := NewClientWith(rec, "")

	_, err := client.EnqueueWarmPresets(context.Background(), EntityAnimals)
	require.NoError(t, err)
	_, err = client.EnqueueBump(context.Background(), "import")
	require.NoError(t, err)

	require.Len(t, rec.tasks, 2)
	assert.Equal(t, TaskWarmPresets, rec.tasks[0].Type())
	var warm WarmPresetsPayload
	require.NoError(t, json.Unmarshal(rec.tasks[0].Payload(), &warm))
	assert.Equal(t, []string{EntityAnimals}, warm.Entities)

	assert.Equal(t, TaskBumpCache, rec.tasks[1].Type())
	var bump BumpCachePayload
	require.NoError(t, json.Unmarshal(rec.tasks[1].Payload(), &bump))
	assert.Equal(t, "import", bump.Reason)
}

type stubInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (s stubInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) {
	return s.info, s.err
}

func serveHealth(t *testing.T, h *Handler) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.MountRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	return rec
}

func TestHealthReportsQueue(t *testing.T) {
	h := NewHandler(stubInspector{info: &asynq.QueueInfo{Queue: "warm", Pending: 2, Retry: 1}}, "warm", nil)
	rec := serveHealth(t, h)

	require.Equal(t, http.StatusOK, rec.Code)
	var body queueHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, queueHealth{Queue: "warm", Pending: 2, Retry: 1}, body)
}

func TestHealthWithoutInspector(t *testing.T) {
	rec := serveHealth(t, NewHandler(nil, "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":0,"active":0,"scheduled":0,"retry":0}`, rec.Body.String())
}

func TestHealthQueueUnavailable(t *testing.T) {
	rec := serveHealth(t, NewHandler(stubInspector{err: errors.New("redis down")}, "", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewWorkerRequiresRedis(t *testing.T) {
	_, err := NewWorker(WorkerConfig{})
	assert.Error(t, err)
}
