package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animeaux/animeaux/internal/adoption"
	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/exhibitors"
	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/internal/view"
	"github.com/animeaux/animeaux/jobs"
)

type stubAnimals struct{}

func (stubAnimals) List(context.Context, animals.SearchParams, int, int) ([]animals.Animal, int, error) {
	return []animals.Animal{{Name: "Filou", Species: animals.SpeciesCat, Status: animals.StatusOpenToAdoption}}, 1, nil
}

type stubExhibitors struct{}

func (stubExhibitors) List(context.Context, exhibitors.SearchParams, int, int) ([]exhibitors.Exhibitor, int, error) {
	return nil, 0, nil
}

func newTestRouter(t *testing.T) (http.Handler, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine, err := view.NewEngine()
	require.NoError(t, err)
	metrics := observability.NewMetrics()
	animalService := animals.NewService(stubAnimals{}, nil, nil)

	router := NewRouter(RouterParams{
		Config:            &Config{AppEnv: "test", AppRequestTimeout: time.Second},
		SessionManager:    shared.NewSessionManager(client, "animeaux_session", time.Hour, false),
		AnimalsHandler:    animals.NewHandler(nil, animalService, engine, metrics),
		AdoptionHandler:   adoption.NewHandler(nil, animalService, engine, metrics),
		ExhibitorsHandler: exhibitors.NewHandler(nil, exhibitors.NewService(stubExhibitors{}, nil, nil), engine, metrics),
		JobsHandler:       jobs.NewHandler(nil, "", nil),
		Metrics:           metrics,
	})
	return router, mr
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}

func TestRootRedirectsToAnimals(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/animals", rr.Header().Get("Location"))
}

func TestListRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/animals", "/adoption?species=CAT", "/exhibitors", "/api/animals", "/api/exhibitors"} {
		rr := serve(router, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
	}
}

func TestSignedInUserGetsOwnQuickFilter(t *testing.T) {
	router, mr := newTestRouter(t)
	sessionID := uuid.NewString()
	payload, err := json.Marshal(map[string]any{
		"user_id": uuid.NewString(),
		"flashes": []map[string]string{{"kind": "success", "message": "Bienvenue"}},
	})
	require.NoError(t, err)
	require.NoError(t, mr.Set("session:"+sessionID, string(payload)))

	req := httptest.NewRequest(http.MethodGet, "/animals", nil)
	req.AddCookie(&http.Cookie{Name: "animeaux_session", Value: sessionID})
	rr := serve(router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Mes animaux")
	assert.Contains(t, rr.Body.String(), "Bienvenue")

	stored, err := mr.Get("session:" + sessionID)
	require.NoError(t, err)
	assert.NotContains(t, stored, "Bienvenue")
}

func TestSessionStoreDownServesAnonymously(t *testing.T) {
	router, mr := newTestRouter(t)
	mr.Close()

	req := httptest.NewRequest(http.MethodGet, "/api/animals", nil)
	req.AddCookie(&http.Cookie{Name: "animeaux_session", Value: uuid.NewString()})
	rr := serve(router, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestStaticAssets(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := serve(router, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/css")
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	serve(router, httptest.NewRequest(http.MethodGet, "/api/animals?species=DOG&species=CAT", nil))
	rr := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `animeaux_search_params_normalized_total{entity="animals"} 1`)
	assert.Contains(t, rr.Body.String(), `animeaux_http_requests_total{code="200"`)
}

func TestRouterJobsHealth(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := serve(router, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"queue":"default"`)
}
