package exhibitors

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	assert.Equal(t, "documents=AWAITING_VALIDATION&sort=NAME", NewSearchParams(PresetToReview()).Query())
	assert.Equal(t, "payment=NOT_PAID&sort=NAME", NewSearchParams(PresetUnpaid()).Query())

	presets := Presets()
	require.Len(t, presets, 3)
	assert.Equal(t, "sort=NAME", presets[0].Query())
}

func TestQuickFilters(t *testing.T) {
	current := url.Values{KeyPayment: {"NOT_PAID"}, KeySort: {"UPDATED_AT"}, "page": {"5"}}
	filters := QuickFilters(current)

	require.Len(t, filters, 2)
	assert.False(t, filters[0].Active)
	assert.Equal(t, "?documents=AWAITING_VALIDATION&sort=UPDATED_AT", filters[0].Href)
	assert.True(t, filters[1].Active)
	assert.Equal(t, "?payment=NOT_PAID&sort=UPDATED_AT", filters[1].Href)
}

func TestQuickFilterInactiveWithExtraFilter(t *testing.T) {
	current := url.Values{KeyPayment: {"NOT_PAID"}, KeyTargets: {"DOGS"}}
	filters := QuickFilters(current)
	assert.False(t, filters[1].Active)
}
