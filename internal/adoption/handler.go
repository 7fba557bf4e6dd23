package adoption

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/internal/view"
)

// PerPage is the page size of the adoption list.
const PerPage = 24

// Entity names the adoption list in metrics.
const Entity = "adoption"

// Handler serves the public adoption list.
type Handler struct {
	logger    *slog.Logger
	animals   *animals.Service
	templates *view.Engine
	metrics   *observability.Metrics
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *animals.Service, templates *view.Engine, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, animals: service, templates: templates, metrics: metrics}
}

// MountRoutes registers adoption routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if !Spec.IsCanonical(query) {
		h.metrics.SearchNormalized(Entity)
	}
	params := ParseSearchParams(query)
	pagination := shared.NewPagination(shared.PageFromQuery(query), PerPage, 0)

	page, err := h.animals.List(r.Context(), params.AnimalParams(), PerPage, pagination.Offset())
	if err != nil {
		h.logger.Error("list adoptable animals", slog.Any("error", err), slog.String("query", r.URL.RawQuery))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pagination = shared.NewPagination(pagination.Page, PerPage, page.Total)

	f := params.Filters()
	data := map[string]any{
		"Animals": page.Animals,
		"Total":   page.Total,
		"Groups": []view.FilterGroup{
			view.Group("Espèce", animals.AllSpecies, animals.Species.Label, f, KeySpecies),
			view.Group("Âge", animals.Ages, animals.Age.Label, f, KeyAges),
			view.Group("Sexe", animals.Sexes, animals.Sex.Label, f, KeySexes),
		},
		"Sorts":       view.SortOptions(Sorts, Sort.Label, params.Sort()),
		"ActiveCount": f.ActiveCount(),
		"Pages":       view.NewPageLinks(pagination, params.Values(query)),
	}

	viewData := view.TemplateData{
		Title:       "Adopter",
		Flash:       shared.SessionFromContext(r.Context()).PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, http.StatusOK, "pages/adoption.html", viewData); err != nil {
		h.logger.Error("template render failed", slog.Any("error", err), slog.String("template", "pages/adoption.html"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
