package animals

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/animeaux/animeaux/internal/searchparams"
)

// Sort is the ordering of the animal list.
type Sort string

const (
	SortName      Sort = "NAME"
	SortBirthdate Sort = "BIRTHDATE"
	SortPickUp    Sort = "PICK_UP"
)

// Sorts lists every ordering in display order.
var Sorts = []Sort{SortName, SortBirthdate, SortPickUp}

// Label returns the French display label.
func (s Sort) Label() string {
	switch s {
	case SortName:
		return "Nom"
	case SortBirthdate:
		return "Date de naissance"
	case SortPickUp:
		return "Date de prise en charge"
	default:
		return string(s)
	}
}

// Query keys of the animal list.
const (
	KeyStatuses    = "statuses"
	KeySpecies     = "species"
	KeyAges        = "ages"
	KeySexes       = "sexes"
	KeyManagersID  = "managersId"
	KeyNameOrAlias = "nameOrAlias"
	KeyBirthdate   = "birthdate"
	KeyPickUpDate  = "pickUpDate"
	KeySort        = "sort"
)

// FilterSpec declares the animal filters. SortSpec declares the animal
// ordering; both live on the same URL.
var (
	FilterSpec = searchparams.MustSpec("animals", searchparams.SortOmitDefault,
		searchparams.EnumSet(KeyStatuses, searchparams.Strings(Statuses)...),
		searchparams.EnumSet(KeySpecies, searchparams.Strings(AllSpecies)...),
		searchparams.EnumSet(KeyAges, searchparams.Strings(Ages)...),
		searchparams.EnumSet(KeySexes, searchparams.Strings(Sexes)...),
		searchparams.IDSet(KeyManagersID),
		searchparams.Text(KeyNameOrAlias),
		searchparams.DateRangeField(KeyBirthdate),
		searchparams.DateRangeField(KeyPickUpDate),
	)
	SortSpec = searchparams.MustSpec("animals-sort", searchparams.SortOmitDefault,
		searchparams.Sort(KeySort, string(SortName), searchparams.Strings(Sorts)...),
	)
)

// SearchParams is the decoded filter and sort state of the animal list.
type SearchParams struct {
	filters searchparams.Filters
	order   searchparams.Filters
}

// ParseSearchParams decodes the animal list state from query values.
func ParseSearchParams(values url.Values) SearchParams {
	return SearchParams{
		filters: FilterSpec.Parse(values),
		order:   SortSpec.Parse(values),
	}
}

// NewSearchParams combines filters with the default ordering.
func NewSearchParams(filters searchparams.Filters) SearchParams {
	return SearchParams{filters: filters, order: SortSpec.Empty()}
}

// Values serializes the state on top of base, keeping unrelated keys.
func (p SearchParams) Values(base url.Values) url.Values {
	return p.order.Serialize(p.filters.Serialize(base))
}

// Query returns the canonical encoded query string.
func (p SearchParams) Query() string {
	return p.Values(nil).Encode()
}

// Equal reports whether both filters and ordering match.
func (p SearchParams) Equal(other SearchParams) bool {
	return p.filters.Equal(other.filters) && p.order.Equal(other.order)
}

// Filters returns the decoded filters.
func (p SearchParams) Filters() searchparams.Filters {
	if p.filters.Spec() == nil {
		return FilterSpec.Empty()
	}
	return p.filters
}

// WithFilters replaces the filters and keeps the ordering.
func (p SearchParams) WithFilters(f searchparams.Filters) SearchParams {
	p.filters = f
	return p
}

// WithSort replaces the ordering and keeps the filters.
func (p SearchParams) WithSort(s Sort) SearchParams {
	if p.order.Spec() == nil {
		p.order = SortSpec.Empty()
	}
	p.order = p.order.WithSort(KeySort, string(s))
	return p
}

func (p SearchParams) Statuses() []Status {
	return searchparams.SetOf[Status](p.filters, KeyStatuses)
}

func (p SearchParams) Species() []Species {
	return searchparams.SetOf[Species](p.filters, KeySpecies)
}

func (p SearchParams) Ages() []Age {
	return searchparams.SetOf[Age](p.filters, KeyAges)
}

func (p SearchParams) Sexes() []Sex {
	return searchparams.SetOf[Sex](p.filters, KeySexes)
}

func (p SearchParams) ManagersID() []uuid.UUID {
	return searchparams.IDsOf(p.filters, KeyManagersID)
}

func (p SearchParams) NameOrAlias() (string, bool) {
	return p.filters.Text(KeyNameOrAlias)
}

func (p SearchParams) Birthdate() searchparams.DateRange {
	return p.filters.Range(KeyBirthdate)
}

func (p SearchParams) PickUpDate() searchparams.DateRange {
	return p.filters.Range(KeyPickUpDate)
}

// Sort returns the ordering, NAME when none was requested.
func (p SearchParams) Sort() Sort {
	if p.order.Spec() == nil {
		return SortName
	}
	return Sort(p.order.Sort(KeySort))
}
