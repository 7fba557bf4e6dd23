package animals

import (
	"net/url"

	"github.com/google/uuid"

	"github.com/animeaux/animeaux/internal/searchparams"
	"github.com/animeaux/animeaux/internal/shared"
)

// PresetActive selects every animal still in the shelter's care.
func PresetActive() searchparams.Filters {
	return FilterSpec.Preset().
		Set(KeyStatuses, searchparams.Strings(ActiveStatuses)...).
		Build()
}

// PresetOpenToAdoption selects the animals waiting for an adopter.
func PresetOpenToAdoption() searchparams.Filters {
	return FilterSpec.Preset().
		Set(KeyStatuses, string(StatusOpenToAdoption)).
		Build()
}

// PresetAssignedTo selects the active animals managed by userID.
func PresetAssignedTo(userID uuid.UUID) searchparams.Filters {
	return FilterSpec.Preset().
		Set(KeyStatuses, searchparams.Strings(ActiveStatuses)...).
		Set(KeyManagersID, userID.String()).
		Build()
}

// QuickFilter is a link to a preset filter state.
type QuickFilter struct {
	Label   string
	Filters searchparams.Filters
	Href    string
	Active  bool
}

// QuickFilters returns the quick filters of the animal list. The "mine" entry
// is only offered when currentUser is set. Links keep the current ordering and
// unrelated keys of current; a link is active when its filters equal the live
// filters.
func QuickFilters(current url.Values, currentUser *uuid.UUID) []QuickFilter {
	live := ParseSearchParams(current)
	presets := []QuickFilter{
		{Label: "Actifs", Filters: PresetActive()},
		{Label: "Adoptables", Filters: PresetOpenToAdoption()},
	}
	if currentUser != nil {
		presets = append(presets, QuickFilter{Label: "Mes animaux", Filters: PresetAssignedTo(*currentUser)})
	}
	for i := range presets {
		next := live.WithFilters(presets[i].Filters)
		presets[i].Href = "?" + next.Values(withoutPage(current)).Encode()
		presets[i].Active = presets[i].Filters.Equal(live.Filters())
	}
	return presets
}

func withoutPage(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for k, vs := range values {
		if k == shared.PageKey {
			continue
		}
		out[k] = vs
	}
	return out
}

// Presets returns every preset that does not depend on a user. The worker
// warms the list cache with them.
func Presets() []SearchParams {
	return []SearchParams{
		NewSearchParams(FilterSpec.Empty()),
		NewSearchParams(PresetActive()),
		NewSearchParams(PresetOpenToAdoption()),
	}
}
