package exhibitors

import (
	"net/url"

	"github.com/animeaux/animeaux/internal/searchparams"
	"github.com/animeaux/animeaux/internal/shared"
)

// PresetToReview selects the exhibitors whose documents wait for validation.
func PresetToReview() searchparams.Filters {
	return Spec.Preset().
		Set(KeyDocuments, string(DocumentAwaitingValidation)).
		Build()
}

// PresetUnpaid selects the exhibitors that have not paid their stand.
func PresetUnpaid() searchparams.Filters {
	return Spec.Preset().
		Set(KeyPayment, string(PaymentNotPaid)).
		Build()
}

// QuickFilter is a link to a preset filter state.
type QuickFilter struct {
	Label  string
	Href   string
	Active bool
}

// QuickFilters returns the quick filters of the exhibitor list. Links keep the
// current ordering; a link is active when its filters match the live ones.
func QuickFilters(current url.Values) []QuickFilter {
	live := ParseSearchParams(current)
	base := make(url.Values, len(current))
	for k, vs := range current {
		if k != shared.PageKey {
			base[k] = vs
		}
	}
	presets := []struct {
		label   string
		filters searchparams.Filters
	}{
		{"À valider", PresetToReview()},
		{"Non payés", PresetUnpaid()},
	}
	out := make([]QuickFilter, len(presets))
	for i, p := range presets {
		next := live.WithFilters(p.filters)
		out[i] = QuickFilter{
			Label:  p.label,
			Href:   "?" + next.Values(base).Encode(),
			Active: next.Equal(live),
		}
	}
	return out
}

// Presets returns the states the worker warms into the list cache.
func Presets() []SearchParams {
	return []SearchParams{
		NewSearchParams(Spec.Empty()),
		NewSearchParams(PresetToReview()),
		NewSearchParams(PresetUnpaid()),
	}
}
