package exhibitors

import (
	"net/url"

	"github.com/animeaux/animeaux/internal/searchparams"
)

// Sort is the ordering of the exhibitor list.
type Sort string

const (
	SortName      Sort = "NAME"
	SortUpdatedAt Sort = "UPDATED_AT"
)

// Sorts lists every ordering in display order.
var Sorts = []Sort{SortName, SortUpdatedAt}

// Label returns the French display label.
func (s Sort) Label() string {
	switch s {
	case SortName:
		return "Nom"
	case SortUpdatedAt:
		return "Dernière modification"
	default:
		return string(s)
	}
}

// Query keys of the exhibitor list.
const (
	KeyName       = "name"
	KeyActivity   = "activity"
	KeyTargets    = "targets"
	KeyDocuments  = "documents"
	KeyPayment    = "payment"
	KeyVisibility = "visibility"
	KeyUpdatedAt  = "updatedAt"
	KeySort       = "sort"
)

// Spec declares the exhibitor filters and ordering.
var Spec = searchparams.MustSpec("exhibitors", searchparams.SortAlwaysEmit,
	searchparams.Text(KeyName),
	searchparams.EnumSet(KeyActivity, searchparams.Strings(Activities)...),
	searchparams.EnumSet(KeyTargets, searchparams.Strings(Targets)...),
	searchparams.EnumSet(KeyDocuments, searchparams.Strings(DocumentStatuses)...),
	searchparams.EnumSet(KeyPayment, searchparams.Strings(Payments)...),
	searchparams.EnumSet(KeyVisibility, searchparams.Strings(Visibilities)...),
	searchparams.DateRangeField(KeyUpdatedAt),
	searchparams.Sort(KeySort, string(SortName), searchparams.Strings(Sorts)...),
)

// filterKeys are the keys counted as active filters.
var filterKeys = []string{KeyName, KeyActivity, KeyTargets, KeyDocuments, KeyPayment, KeyVisibility, KeyUpdatedAt}

// SearchParams is the decoded state of the exhibitor list.
type SearchParams struct {
	filters searchparams.Filters
}

// ParseSearchParams decodes the exhibitor list state from query values.
func ParseSearchParams(values url.Values) SearchParams {
	return SearchParams{filters: Spec.Parse(values)}
}

// NewSearchParams wraps filters built from Spec.
func NewSearchParams(filters searchparams.Filters) SearchParams {
	return SearchParams{filters: filters}
}

// Values serializes the state on top of base, keeping unrelated keys.
func (p SearchParams) Values(base url.Values) url.Values {
	return p.Filters().Serialize(base)
}

// Query returns the canonical encoded query string.
func (p SearchParams) Query() string {
	return p.Values(nil).Encode()
}

// Filters returns the decoded filters.
func (p SearchParams) Filters() searchparams.Filters {
	if p.filters.Spec() == nil {
		return Spec.Empty()
	}
	return p.filters
}

// Equal reports whether p and other select and order the same exhibitors.
func (p SearchParams) Equal(other SearchParams) bool {
	return p.Filters().Equal(other.Filters())
}

// ActiveFilters counts the filters in use, ordering excluded.
func (p SearchParams) ActiveFilters() int {
	return p.Filters().ActiveCount(filterKeys...)
}

func (p SearchParams) Name() (string, bool) {
	return p.filters.Text(KeyName)
}

func (p SearchParams) Activities() []Activity {
	return searchparams.SetOf[Activity](p.filters, KeyActivity)
}

func (p SearchParams) Targets() []Target {
	return searchparams.SetOf[Target](p.filters, KeyTargets)
}

func (p SearchParams) Documents() []DocumentStatus {
	return searchparams.SetOf[DocumentStatus](p.filters, KeyDocuments)
}

func (p SearchParams) Payments() []Payment {
	return searchparams.SetOf[Payment](p.filters, KeyPayment)
}

func (p SearchParams) Visibilities() []Visibility {
	return searchparams.SetOf[Visibility](p.filters, KeyVisibility)
}

func (p SearchParams) UpdatedAt() searchparams.DateRange {
	return p.filters.Range(KeyUpdatedAt)
}

// Sort returns the ordering, NAME when none was requested.
func (p SearchParams) Sort() Sort {
	return Sort(p.Filters().Sort(KeySort))
}

// WithSort replaces the ordering and keeps the filters.
func (p SearchParams) WithSort(s Sort) SearchParams {
	p.filters = p.Filters().WithSort(KeySort, string(s))
	return p
}

// WithFilters replaces every filter with those of f and keeps the ordering.
func (p SearchParams) WithFilters(f searchparams.Filters) SearchParams {
	return NewSearchParams(f).WithSort(p.Sort())
}
