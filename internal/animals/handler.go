package animals

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/animeaux/animeaux/internal/observability"
	"github.com/animeaux/animeaux/internal/platform/httpx"
	"github.com/animeaux/animeaux/internal/searchparams"
	"github.com/animeaux/animeaux/internal/shared"
	"github.com/animeaux/animeaux/internal/view"
)

// PerPage is the page size of the animal list.
const PerPage = 30

// Handler serves the animal list.
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
	params := h.parse(query)
	pagination := shared.NewPagination(shared.PageFromQuery(query), PerPage, 0)

	page, err := h.service.List(r.Context(), params, PerPage, pagination.Offset())
	if err != nil {
		h.logger.Error("list animals", slog.Any("error", err), slog.String("query", r.URL.RawQuery))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	pagination = shared.NewPagination(pagination.Page, PerPage, page.Total)

	f := params.Filters()
	birthdate := params.Birthdate()
	pickUp := params.PickUpDate()
	name, _ := params.NameOrAlias()
	today := civil.DateOf(time.Now())
	rows := make([]listRow, len(page.Animals))
	for i, a := range page.Animals {
		rows[i] = listRow{Animal: a, Age: AgeOf(a.Species, civil.DateOf(a.Birthdate), today)}
	}

	h.render(w, r, "pages/animals.html", map[string]any{
		"Animals":      rows,
		"Total":        page.Total,
		"QuickFilters": QuickFilters(query, shared.CurrentUser(r.Context())),
		"Groups": []view.FilterGroup{
			view.Group("Statut", Statuses, Status.Label, f, KeyStatuses),
			view.Group("Espèce", AllSpecies, Species.Label, f, KeySpecies),
			view.Group("Âge", Ages, Age.Label, f, KeyAges),
			view.Group("Sexe", Sexes, Sex.Label, f, KeySexes),
		},
		"Sorts":            view.SortOptions(Sorts, Sort.Label, params.Sort()),
		"NameOrAlias":      name,
		"Birthdate":        birthdate,
		"PickUpDate":       pickUp,
		"ManagersID":       searchparams.IDStrings(params.ManagersID()),
		"ActiveCount":      f.ActiveCount(),
		"ClearFiltersHref": "?" + NewSearchParams(FilterSpec.Empty()).WithSort(params.Sort()).Query(),
		"Pages":            view.NewPageLinks(pagination, params.Values(query)),
	}, http.StatusOK)
}

type listRow struct {
	Animal
	Age Age
}

// apiResponse is the JSON body of GET /api/animals.
type apiResponse struct {
	Query   string    `json:"query"`
	Filters apiFilter `json:"filters"`
	Page    int       `json:"page"`
	PerPage int       `json:"perPage"`
	Total   int       `json:"total"`
	Items   []Animal  `json:"items"`
}

type apiFilter struct {
	Statuses       []Status    `json:"statuses"`
	Species        []Species   `json:"species"`
	Ages           []Age       `json:"ages"`
	Sexes          []Sex       `json:"sexes"`
	ManagersID     []uuid.UUID `json:"managersId"`
	NameOrAlias    string      `json:"nameOrAlias,omitempty"`
	BirthdateStart string      `json:"birthdateStart,omitempty"`
	BirthdateEnd   string      `json:"birthdateEnd,omitempty"`
	PickUpStart    string      `json:"pickUpDateStart,omitempty"`
	PickUpEnd      string      `json:"pickUpDateEnd,omitempty"`
	Sort           Sort        `json:"sort"`
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := h.parse(query)
	pageNum := shared.PageFromQuery(query)

	page, err := h.service.List(r.Context(), params, PerPage, shared.NewPagination(pageNum, PerPage, 0).Offset())
	if err != nil {
		h.logger.Error("list animals", slog.Any("error", err), slog.String("query", r.URL.RawQuery))
		httpx.RespondError(w, err)
		return
	}
	items := page.Animals
	if items == nil {
		items = []Animal{}
	}
	httpx.JSON(w, http.StatusOK, apiResponse{
		Query:   params.Query(),
		Filters: echo(params),
		Page:    pageNum,
		PerPage: PerPage,
		Total:   page.Total,
		Items:   items,
	})
}

func echo(p SearchParams) apiFilter {
	name, _ := p.NameOrAlias()
	b, pu := p.Birthdate(), p.PickUpDate()
	return apiFilter{
		Statuses:       nonNil(p.Statuses()),
		Species:        nonNil(p.Species()),
		Ages:           nonNil(p.Ages()),
		Sexes:          nonNil(p.Sexes()),
		ManagersID:     nonNil(p.ManagersID()),
		NameOrAlias:    name,
		BirthdateStart: dateString(b.HasStart(), b.Start.String()),
		BirthdateEnd:   dateString(b.HasEnd(), b.End.String()),
		PickUpStart:    dateString(pu.HasStart(), pu.Start.String()),
		PickUpEnd:      dateString(pu.HasEnd(), pu.End.String()),
		Sort:           p.Sort(),
	}
}

// parse decodes the query and counts requests whose query was not canonical.
func (h *Handler) parse(query url.Values) SearchParams {
	if !FilterSpec.IsCanonical(query) || !SortSpec.IsCanonical(query) {
		h.metrics.SearchNormalized(CacheEntity)
	}
	return ParseSearchParams(query)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, tmpl string, data map[string]any, status int) {
	sess := shared.SessionFromContext(r.Context())
	viewData := view.TemplateData{
		Title:       "Animaux",
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := h.templates.Render(w, status, tmpl, viewData); err != nil {
		h.logger.Error("template render failed", slog.Any("error", err), slog.String("template", tmpl))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func dateString(ok bool, s string) string {
	if !ok {
		return ""
	}
	return s
}
