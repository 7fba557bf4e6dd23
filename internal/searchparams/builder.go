package searchparams

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// Builder assembles a complete Filters value from the fields it is given.
// Fields never mentioned keep their empty, absent or default value.
//
// Builders describe presets declared in code, so naming an undeclared field or
// a value outside an enumeration panics.
type Builder struct {
	f Filters
}

// Preset starts a Builder from the empty filters of s.
func (s *Spec) Preset() *Builder {
	return &Builder{f: s.Empty()}
}

// Set adds values to the set field key.
func (b *Builder) Set(key string, values ...string) *Builder {
	fd := b.f.spec.mustField(key, KindEnumSet, KindIDSet)
	for _, v := range values {
		token, ok := fd.acceptSetToken(v)
		if !ok {
			panic(fmt.Sprintf("searchparams: %s: %q is not a valid %s value", b.f.spec.name, v, key))
		}
		members := b.f.sets[key]
		if members == nil {
			members = make(map[string]struct{})
			b.f.sets[key] = members
		}
		members[token] = struct{}{}
	}
	return b
}

// Text sets the text field key. Blank values leave it absent.
func (b *Builder) Text(key, value string) *Builder {
	b.f.spec.mustField(key, KindText)
	if v, ok := normalizeText(value); ok {
		b.f.texts[key] = v
	}
	return b
}

// Date sets the date field key.
func (b *Builder) Date(key string, d civil.Date) *Builder {
	b.f.spec.mustField(key, KindDate)
	if d = validDate(d); d != (civil.Date{}) {
		b.f.dates[key] = d
	}
	return b
}

// Range sets the date range field key.
func (b *Builder) Range(key string, r DateRange) *Builder {
	b.f.spec.mustField(key, KindDateRange)
	r = DateRange{Start: validDate(r.Start), End: validDate(r.End)}
	if !r.IsEmpty() {
		b.f.ranges[key] = r
	}
	return b
}

// Sort selects value for the sort field key.
func (b *Builder) Sort(key, value string) *Builder {
	fd := b.f.spec.mustField(key, KindSort)
	if !fd.isMember(value) {
		panic(fmt.Sprintf("searchparams: %s: %q is not a valid %s value", b.f.spec.name, value, key))
	}
	b.f.sorts[key] = value
	return b
}

// Build returns the assembled filters. The builder can keep being used.
func (b *Builder) Build() Filters {
	return b.f.clone()
}
