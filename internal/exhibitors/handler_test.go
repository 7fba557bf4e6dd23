package exhibitors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/internal/view"
)

func newTestRouter(t *testing.T, repo Repository) http.Handler {
	t.Helper()
	engine, err := view.NewEngine()
	require.NoError(t, err)
	h := NewHandler(nil, NewService(repo, nil, nil), engine, nil)
	r := chi.NewRouter()
	r.Route("/exhibitors", h.MountRoutes)
	r.Route("/api/exhibitors", h.MountAPI)
	return r
}

func TestListJSON(t *testing.T) {
	router := newTestRouter(t, &fakeRepository{items: sampleExhibitors()})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/exhibitors?documents=AWAITING_VALIDATION&documents=LOST", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body apiResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "documents=AWAITING_VALIDATION&sort=NAME", body.Query)
	assert.Equal(t, SortName, body.Sort)
	assert.Equal(t, 1, body.Page)
	require.Len(t, body.Items, 1)
	assert.Equal(t, []Target{TargetCats, TargetDogs}, body.Items[0].Targets)
}

func TestListJSONFailure(t *testing.T) {
	router := newTestRouter(t, &fakeRepository{err: errors.New("db down")})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/exhibitors", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestListJSONDatabaseUnavailable(t *testing.T) {
	err := fmt.Errorf("exhibitors: list: %w: %w", shared.ErrUnavailable, errors.New("connection refused"))
	router := newTestRouter(t, &fakeRepository{err: err})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/exhibitors", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestListHTML(t *testing.T) {
	router := newTestRouter(t, &fakeRepository{items: sampleExhibitors()})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/exhibitors?payment=NOT_PAID", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Croquettes &amp; Cie")
	assert.Contains(t, body, "Non payés")
}
