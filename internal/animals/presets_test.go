package animals

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var me = uuid.MustParse("0b8e7d4c-3f0e-4a43-9a16-5f1e7f4a2d10")

func TestPresetSurvivesTheURL(t *testing.T) {
	preset := PresetAssignedTo(me)
	query := NewSearchParams(preset).Values(nil)

	parsed := ParseSearchParams(query)
	assert.True(t, preset.Equal(parsed.Filters()))

	other := uuid.MustParse("a3c1f5e2-8d4b-4c6a-9e7f-1b2c3d4e5f60")
	query.Add(KeyManagersID, other.String())
	assert.False(t, preset.Equal(ParseSearchParams(query).Filters()))
}

func TestPresetContents(t *testing.T) {
	active := NewSearchParams(PresetActive())
	assert.Equal(t, ActiveStatuses, active.Statuses())
	assert.Empty(t, active.ManagersID())

	adoptable := NewSearchParams(PresetOpenToAdoption())
	assert.Equal(t, []Status{StatusOpenToAdoption}, adoptable.Statuses())

	mine := NewSearchParams(PresetAssignedTo(me))
	assert.Equal(t, ActiveStatuses, mine.Statuses())
	assert.Equal(t, []uuid.UUID{me}, mine.ManagersID())
}

func TestQuickFilters(t *testing.T) {
	current := NewSearchParams(PresetOpenToAdoption()).WithSort(SortBirthdate).Values(url.Values{"page": {"4"}})

	anonymous := QuickFilters(current, nil)
	require.Len(t, anonymous, 2)
	assert.False(t, anonymous[0].Active)
	assert.True(t, anonymous[1].Active)
	assert.Equal(t, "?sort=BIRTHDATE&statuses=OPEN_TO_ADOPTION", anonymous[1].Href)

	signedIn := QuickFilters(current, &me)
	require.Len(t, signedIn, 3)
	assert.Equal(t, "Mes animaux", signedIn[2].Label)
	assert.False(t, signedIn[2].Active)

	href, err := url.ParseQuery(signedIn[2].Href[1:])
	require.NoError(t, err)
	assert.Equal(t, []string{me.String()}, href[KeyManagersID])
	assert.Equal(t, "BIRTHDATE", href.Get(KeySort))
	assert.NotContains(t, href, "page")
}

func TestQuickFilterActiveIgnoresValueOrder(t *testing.T) {
	current := url.Values{KeyStatuses: {"UNAVAILABLE", "RESERVED", "OPEN_TO_RESERVATION", "OPEN_TO_ADOPTION", "IN_SAFE_PLACE"}}
	filters := QuickFilters(current, nil)
	assert.True(t, filters[0].Active)
	assert.False(t, filters[1].Active)
}

func TestPresetsForWarmUp(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 3)
	assert.Empty(t, presets[0].Query())
	for _, p := range presets {
		assert.Equal(t, SortName, p.Sort())
	}
}
