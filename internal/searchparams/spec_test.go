package searchparams

import (
	"net/url"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpecRejectsBadDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{"empty key", []Field{Text("")}},
		{"reserved character in key", []Field{Text("a&b")}},
		{"enum without values", []Field{EnumSet("colors")}},
		{"duplicate enum value", []Field{EnumSet("colors", "RED", "RED")}},
		{"blank enum value", []Field{EnumSet("colors", "RED", "")}},
		{"sort default not a member", []Field{Sort("sort", "SIZE", "NAME", "AGE")}},
		{"values on text field", []Field{{Key: "q", Kind: KindText, Values: []string{"x"}}}},
		{"unknown kind", []Field{{Key: "q", Kind: Kind(42)}}},
		{"duplicate field", []Field{Text("q"), Date("q")}},
		{"range key collision", []Field{DateRangeField("born"), Text("bornStart")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpec("bad", SortOmitDefault, tt.fields...)
			assert.Error(t, err)
		})
	}

	_, err := NewSpec(" ", SortOmitDefault, Text("q"))
	assert.Error(t, err)

	assert.Panics(t, func() {
		MustSpec("bad", SortOmitDefault, EnumSet("colors"))
	})
}

func TestSpecOwns(t *testing.T) {
	assert.True(t, testSpec.Owns("colors"))
	assert.True(t, testSpec.Owns("bornStart"))
	assert.True(t, testSpec.Owns("bornEnd"))
	assert.False(t, testSpec.Owns("born"))
	assert.False(t, testSpec.Owns("page"))
}

func TestPresetFillsOmittedFields(t *testing.T) {
	f := testSpec.Preset().Set("colors", "GREEN").Build()

	assert.Equal(t, []string{"GREEN"}, f.Set("colors"))
	assert.Empty(t, f.Set("owners"))
	assert.Equal(t, "NAME", f.Sort("sort"))
	assert.Equal(t, 1, f.ActiveCount())
}

func TestPresetPanicsOnProgrammerErrors(t *testing.T) {
	assert.Panics(t, func() { testSpec.Preset().Set("colors", "PURPLE") })
	assert.Panics(t, func() { testSpec.Preset().Set("shapes", "ROUND") })
	assert.Panics(t, func() { testSpec.Preset().Text("colors", "RED") })
	assert.Panics(t, func() { testSpec.Preset().Sort("sort", "SIZE") })
	assert.Panics(t, func() { testSpec.Preset().Set("owners", "nope") })
}

func TestPresetEqualityThroughURL(t *testing.T) {
	preset := testSpec.Preset().Set("colors", "RED").Build()

	live := testSpec.ParseQuery(preset.Query(nil))
	assert.True(t, Equal(preset, live))

	live = live.Toggle("owners", "0f8fad5b-d9cb-469f-a165-70867728950e")
	assert.False(t, Equal(preset, live))
}

func TestBuilderBuildReturnsIndependentCopies(t *testing.T) {
	b := testSpec.Preset().Set("colors", "RED")
	first := b.Build()
	b.Set("colors", "BLUE")
	second := b.Build()

	assert.Equal(t, []string{"RED"}, first.Set("colors"))
	assert.Equal(t, []string{"RED", "BLUE"}, second.Set("colors"))
}

func TestFilterEditsReturnCopies(t *testing.T) {
	base := testSpec.Parse(url.Values{"colors": {"RED"}, "q": {"rex"}})

	toggled := base.Toggle("colors", "BLUE")
	assert.Equal(t, []string{"RED"}, base.Set("colors"))
	assert.Equal(t, []string{"RED", "BLUE"}, toggled.Set("colors"))

	untoggled := toggled.Toggle("colors", "RED").Toggle("colors", "BLUE")
	assert.Empty(t, untoggled.Set("colors"))
	assert.False(t, untoggled.IsActive("colors"))

	assert.True(t, Equal(base, base.Toggle("colors", "PURPLE")))
	assert.True(t, Equal(base, base.Toggle("nope", "RED")))

	cleared := base.WithText("q", "   ")
	_, ok := cleared.Text("q")
	assert.False(t, ok)
	v, _ := base.Text("q")
	assert.Equal(t, "rex", v)

	sorted := base.WithSort("sort", "AGE")
	assert.Equal(t, "AGE", sorted.Sort("sort"))
	assert.Equal(t, "NAME", sorted.WithSort("sort", "SIZE").Sort("sort"))

	ranged := base.WithRange("born", DateRange{End: civil.Date{Year: 2024, Month: 1, Day: 1}})
	assert.True(t, ranged.IsActive("born"))
	assert.True(t, ranged.WithRange("born", DateRange{End: civil.Date{Year: 2024, Month: 2, Day: 31}}).Range("born").IsEmpty())
}

func TestClear(t *testing.T) {
	f := testSpec.Parse(url.Values{"colors": {"RED"}, "q": {"rex"}, "sort": {"AGE"}})
	require.Equal(t, 2, f.ActiveCount())

	all := f.Clear()
	assert.Equal(t, 0, all.ActiveCount())
	assert.Equal(t, "AGE", all.Sort("sort"))

	one := f.Clear("colors", "sort")
	assert.Equal(t, 1, one.ActiveCount("colors", "q"))
	assert.Equal(t, "NAME", one.Sort("sort"))
}

func TestTypedHelpers(t *testing.T) {
	type color string
	f := testSpec.Parse(url.Values{"colors": {"BLUE", "RED"}})
	assert.Equal(t, []color{"RED", "BLUE"}, SetOf[color](f, "colors"))
	assert.Nil(t, SetOf[color](testSpec.Empty(), "colors"))
	assert.Equal(t, []string{"RED", "BLUE"}, Strings([]color{"RED", "BLUE"}))
}
