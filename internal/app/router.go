package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/animeaux/animeaux/internal/adoption"
	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/exhibitors"
	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/jobs"
	"github.com/animeaux/animeaux/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	SessionManager    *shared.SessionManager
	AnimalsHandler    *animals.Handler
	AdoptionHandler   *adoption.Handler
	ExhibitorsHandler *exhibitors.Handler
	JobsHandler       *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with the application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/animals", http.StatusSeeOther)
	})

	if params.AnimalsHandler != nil {
		r.Route("/animals", params.AnimalsHandler.MountRoutes)
		r.Route("/api/animals", params.AnimalsHandler.MountAPI)
	}
	if params.AdoptionHandler != nil {
		r.Route("/adoption", params.AdoptionHandler.MountRoutes)
	}
	if params.ExhibitorsHandler != nil {
		r.Route("/exhibitors", params.ExhibitorsHandler.MountRoutes)
		r.Route("/api/exhibitors", params.ExhibitorsHandler.MountAPI)
	}
	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := web.StaticFiles()
	if err != nil {
		logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler lets browsers keep static assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
