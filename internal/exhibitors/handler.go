package exhibitors

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/platform/httpx"
	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/internal/view"
)

// PerPage is the page size of the exhibitor list.
const PerPage = 50

// Handler serves the exhibitor list.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	metrics   *observability.Metrics
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, metrics *observability.Metrics) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, metrics: metrics}
}

// MountRoutes registers the HTML routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

// MountAPI registers the JSON routes.
func (h *Handler) MountAPI(r chi.Router) {
	r.Get("/", h.listJSON)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := h.parse(r)
	pagination := shared.NewPagination(shared.PageFromQuery(query), PerPage, 0)

	page, err := h.service.List(r.Context(), params, PerPage, pagination.Offset())
	if err != nil {
		h.logger.Error("list exhibitors", slog.Any("error", err), slog.String("query", r.URL.RawQuery))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pagination = shared.NewPagination(pagination.Page, PerPage, page.Total)

	f := params.Filters()
	name, _ := params.Name()
	data := map[string]any{
		"Exhibitors":   page.Exhibitors,
		"Total":        page.Total,
		"QuickFilters": QuickFilters(query),
		"Groups": []view.FilterGroup{
			view.Group("Activité", Activities, Activity.Label, f, KeyActivity),
			view.Group("Cibles", Targets, Target.Label, f, KeyTargets),
			view.Group("Documents", DocumentStatuses, DocumentStatus.Label, f, KeyDocuments),
			view.Group("Paiement", Payments, Payment.Label, f, KeyPayment),
			view.Group("Visibilité", Visibilities, Visibility.Label, f, KeyVisibility),
		},
		"Sorts":       view.SortOptions(Sorts, Sort.Label, params.Sort()),
		"Name":        name,
		"UpdatedAt":   params.UpdatedAt(),
		"ActiveCount": params.ActiveFilters(),
		"Pages":       view.NewPageLinks(pagination, params.Values(query)),
	}

	viewData := view.TemplateData{
		Title:       "Exposants",
		Flash:       shared.SessionFromContext(r.Context()).PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, http.StatusOK, "pages/exhibitors.html", viewData); err != nil {
		h.logger.Error("template render failed", slog.Any("error", err), slog.String("template", "pages/exhibitors.html"))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type apiResponse struct {
	Query   string      `json:"query"`
	Sort    Sort        `json:"sort"`
	Page    int         `json:"page"`
	PerPage int         `json:"perPage"`
	Total   int         `json:"total"`
	Items   []Exhibitor `json:"items"`
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	params := h.parse(r)
	pageNum := shared.PageFromQuery(r.URL.Query())

	page, err := h.service.List(r.Context(), params, PerPage, shared.NewPagination(pageNum, PerPage, 0).Offset())
	if err != nil {
		h.logger.Error("list exhibitors", slog.Any("error", err), slog.String("query", r.URL.RawQuery))
		httpx.RespondError(w, err)
		return
	}
	items := page.Exhibitors
	if items == nil {
		items = []Exhibitor{}
	}
	httpx.JSON(w, http.StatusOK, apiResponse{
		Query:   params.Query(),
		Sort:    params.Sort(),
		Page:    pageNum,
		PerPage: PerPage,
		Total:   page.Total,
		Items:   items,
	})
}

func (h *Handler) parse(r *http.Request) SearchParams {
	query := r.URL.Query()
	if !Spec.IsCanonical(query) {
		h.metrics.SearchNormalized(CacheEntity)
	}
	return ParseSearchParams(query)
}
