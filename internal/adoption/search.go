// Package adoption serves the public list of animals waiting for an adopter.
package adoption

import (
	"net/url"

	"github.com/animeaux/animeaux/internal/animals"
	"github.com/animeaux/animeaux/internal/searchparams"
)

// Sort is the ordering of the adoption list.
type Sort string

const (
	SortNewest Sort = "NEWEST"
	SortName   Sort = "NAME"
)

// Sorts lists every ordering in display order.
var Sorts = []Sort{SortNewest, SortName}

// Label returns the French display label.
func (s Sort) Label() string {
	switch s {
	case SortNewest:
		return "Arrivés récemment"
	case SortName:
		return "Nom"
	default:
		return string(s)
	}
}

// Query keys of the adoption list.
const (
	KeySpecies = "species"
	KeyAges    = "ages"
	KeySexes   = "sexes"
	KeySort    = "sort"
)

// Spec declares the adoption filters. The ordering is always written so shared
// links keep their order if the default changes.
var Spec = searchparams.MustSpec("adoption", searchparams.SortAlwaysEmit,
	searchparams.EnumSet(KeySpecies, searchparams.Strings(animals.AllSpecies)...),
	searchparams.EnumSet(KeyAges, searchparams.Strings(animals.Ages)...),
	searchparams.EnumSet(KeySexes, searchparams.Strings(animals.Sexes)...),
	searchparams.Sort(KeySort, string(SortNewest), searchparams.Strings(Sorts)...),
)

// SearchParams is the decoded state of the adoption list.
type SearchParams struct {
	filters searchparams.Filters
}

// ParseSearchParams decodes the adoption list state from query values.
func ParseSearchParams(values url.Values) SearchParams {
	return SearchParams{filters: Spec.Parse(values)}
}

// Values serializes the state on top of base, keeping unrelated keys such as
// the page number.
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

func (p SearchParams) Species() []animals.Species {
	return searchparams.SetOf[animals.Species](p.filters, KeySpecies)
}

func (p SearchParams) Ages() []animals.Age {
	return searchparams.SetOf[animals.Age](p.filters, KeyAges)
}

func (p SearchParams) Sexes() []animals.Sex {
	return searchparams.SetOf[animals.Sex](p.filters, KeySexes)
}

// Sort returns the ordering, NEWEST when none was requested.
func (p SearchParams) Sort() Sort {
	return Sort(p.Filters().Sort(KeySort))
}

// AnimalParams translates the adoption state into an animal list query limited
// to adoptable animals.
func (p SearchParams) AnimalParams() animals.SearchParams {
	filters := animals.FilterSpec.Preset().
		Set(animals.KeyStatuses, searchparams.Strings(animals.AdoptableStatuses)...).
		Set(animals.KeySpecies, searchparams.Strings(p.Species())...).
		Set(animals.KeyAges, searchparams.Strings(p.Ages())...).
		Set(animals.KeySexes, searchparams.Strings(p.Sexes())...).
		Build()
	params := animals.NewSearchParams(filters)
	if p.Sort() == SortNewest {
		return params.WithSort(animals.SortPickUp)
	}
	return params.WithSort(animals.SortName)
}
