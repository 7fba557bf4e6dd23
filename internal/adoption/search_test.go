package adoption

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/animeaux/animeaux/internal/animals"
)

func TestSortIsAlwaysEmitted(t *testing.T) {
	params := ParseSearchParams(url.Values{})
	assert.Equal(t, SortNewest, params.Sort())
	assert.Equal(t, "sort=NEWEST", params.Query())

	params = ParseSearchParams(url.Values{KeySort: {"PRICE"}, KeySpecies: {"DOG"}})
	assert.Equal(t, "sort=NEWEST&species=DOG", params.Query())

	params = ParseSearchParams(url.Values{KeySort: {"NAME"}})
	assert.Equal(t, SortName, params.Sort())
	assert.Equal(t, "sort=NAME", params.Query())
}

func TestPageIsPreserved(t *testing.T) {
	in := url.Values{"page": {"3"}, KeySpecies: {"CAT", "BIRD", "CAT"}}
	out := ParseSearchParams(in).Values(in)

	assert.Equal(t, url.Values{
		"page":     {"3"},
		KeySpecies: {"BIRD", "CAT"},
		KeySort:    {"NEWEST"},
	}, out)
}

func TestRoundTrip(t *testing.T) {
	in := url.Values{KeyAges: {"SENIOR", "JUNIOR"}, KeySexes: {"FEMALE"}, KeySort: {"NAME"}}
	first := ParseSearchParams(in)
	second := ParseSearchParams(first.Values(nil))

	assert.True(t, first.Filters().Equal(second.Filters()))
	assert.Equal(t, first.Query(), second.Query())
}

func TestAnimalParamsForcesAdoptableStatuses(t *testing.T) {
	params := ParseSearchParams(url.Values{
		KeySpecies: {"CAT"},
		KeyAges:    {"JUNIOR"},
		"statuses": {"ADOPTED"},
	})
	got := params.AnimalParams()

	assert.Equal(t, animals.AdoptableStatuses, got.Statuses())
	assert.Equal(t, []animals.Species{animals.SpeciesCat}, got.Species())
	assert.Equal(t, []animals.Age{animals.AgeJunior}, got.Ages())
	assert.Empty(t, got.Sexes())
	assert.Equal(t, animals.SortPickUp, got.Sort())

	byName := ParseSearchParams(url.Values{KeySort: {"NAME"}}).AnimalParams()
	assert.Equal(t, animals.SortName, byName.Sort())
}

func TestZeroSearchParams(t *testing.T) {
	var params SearchParams
	assert.Equal(t, SortNewest, params.Sort())
	assert.Equal(t, "sort=NEWEST", params.Query())
}
