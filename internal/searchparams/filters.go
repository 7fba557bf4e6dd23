package searchparams

import (
	"sort"

	"cloud.google.com/go/civil"
)

// DateRange is an inclusive range of calendar dates. A zero bound is absent.
type DateRange struct {
	Start civil.Date
	End   civil.Date
}

// HasStart reports whether the lower bound is set.
func (r DateRange) HasStart() bool { return r.Start != (civil.Date{}) }

// HasEnd reports whether the upper bound is set.
func (r DateRange) HasEnd() bool { return r.End != (civil.Date{}) }

// IsEmpty reports whether neither bound is set.
func (r DateRange) IsEmpty() bool { return !r.HasStart() && !r.HasEnd() }

// Filters is the decoded state of every field of a Spec.
//
// A Filters value is never modified in place: the edit helpers return a copy.
type Filters struct {
	spec   *Spec
	sets   map[string]map[string]struct{}
	texts  map[string]string
	dates  map[string]civil.Date
	ranges map[string]DateRange
	sorts  map[string]string
}

func newFilters(s *Spec) Filters {
	return Filters{
		spec:   s,
		sets:   make(map[string]map[string]struct{}),
		texts:  make(map[string]string),
		dates:  make(map[string]civil.Date),
		ranges: make(map[string]DateRange),
		sorts:  make(map[string]string),
	}
}

// Empty returns the Filters with every field empty, absent or at its default.
func (s *Spec) Empty() Filters {
	f := newFilters(s)
	for _, fd := range s.fields {
		if fd.Kind == KindSort {
			f.sorts[fd.Key] = fd.Default
		}
	}
	return f
}

// Spec returns the spec the filters were decoded with.
func (f Filters) Spec() *Spec { return f.spec }

// Set returns the members of a set field. Enum members come in declared
// order, ids in ascending order.
func (f Filters) Set(key string) []string {
	members := f.sets[key]
	if len(members) == 0 {
		return nil
	}
	fd, _ := f.spec.Field(key)
	out := make([]string, 0, len(members))
	if fd.Kind == KindEnumSet {
		for _, v := range fd.Values {
			if _, ok := members[v]; ok {
				out = append(out, v)
			}
		}
		return out
	}
	for v := range members {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Has reports whether value is a member of the set field key.
func (f Filters) Has(key, value string) bool {
	_, ok := f.sets[key][value]
	return ok
}

// Text returns the value of a text field.
func (f Filters) Text(key string) (string, bool) {
	v, ok := f.texts[key]
	return v, ok
}

// Date returns the value of a date field.
func (f Filters) Date(key string) (civil.Date, bool) {
	v, ok := f.dates[key]
	return v, ok
}

// Range returns the value of a date range field.
func (f Filters) Range(key string) DateRange {
	return f.ranges[key]
}

// Sort returns the value of a sort field, falling back to its default.
func (f Filters) Sort(key string) string {
	if v, ok := f.sorts[key]; ok {
		return v
	}
	if f.spec == nil {
		return ""
	}
	fd, _ := f.spec.Field(key)
	return fd.Default
}

// IsActive reports whether the field key narrows the result set.
func (f Filters) IsActive(key string) bool {
	if f.spec == nil {
		return false
	}
	fd, ok := f.spec.Field(key)
	if !ok {
		return false
	}
	switch fd.Kind {
	case KindEnumSet, KindIDSet:
		return len(f.sets[key]) > 0
	case KindText:
		_, ok := f.texts[key]
		return ok
	case KindDate:
		_, ok := f.dates[key]
		return ok
	case KindDateRange:
		return !f.ranges[key].IsEmpty()
	default:
		return false
	}
}

// ActiveCount counts the active fields among keys, or among all fields when
// keys is empty. Sort fields never count.
func (f Filters) ActiveCount(keys ...string) int {
	if f.spec == nil {
		return 0
	}
	if len(keys) == 0 {
		for _, fd := range f.spec.fields {
			keys = append(keys, fd.Key)
		}
	}
	n := 0
	for _, k := range keys {
		if f.IsActive(k) {
			n++
		}
	}
	return n
}

// Equal reports whether a and b hold the same value for every declared field.
func Equal(a, b Filters) bool {
	if a.spec != b.spec {
		return false
	}
	if a.spec == nil {
		return true
	}
	for _, fd := range a.spec.fields {
		switch fd.Kind {
		case KindEnumSet, KindIDSet:
			if !sameMembers(a.sets[fd.Key], b.sets[fd.Key]) {
				return false
			}
		case KindText:
			av, aok := a.texts[fd.Key]
			bv, bok := b.texts[fd.Key]
			if aok != bok || av != bv {
				return false
			}
		case KindDate:
			av, aok := a.dates[fd.Key]
			bv, bok := b.dates[fd.Key]
			if aok != bok || av != bv {
				return false
			}
		case KindDateRange:
			if a.ranges[fd.Key] != b.ranges[fd.Key] {
				return false
			}
		case KindSort:
			if a.Sort(fd.Key) != b.Sort(fd.Key) {
				return false
			}
		}
	}
	return true
}

// Equal reports whether f and other hold the same value for every declared field.
func (f Filters) Equal(other Filters) bool { return Equal(f, other) }

func sameMembers(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}

func (f Filters) clone() Filters {
	out := newFilters(f.spec)
	for k, members := range f.sets {
		cp := make(map[string]struct{}, len(members))
		for v := range members {
			cp[v] = struct{}{}
		}
		out.sets[k] = cp
	}
	for k, v := range f.texts {
		out.texts[k] = v
	}
	for k, v := range f.dates {
		out.dates[k] = v
	}
	for k, v := range f.ranges {
		out.ranges[k] = v
	}
	for k, v := range f.sorts {
		out.sorts[k] = v
	}
	return out
}

// Toggle adds value to the set field key, or removes it when already present.
// Values the field would not accept on parse leave the filters unchanged.
func (f Filters) Toggle(key, value string) Filters {
	fd, ok := f.field(key, KindEnumSet, KindIDSet)
	if !ok {
		return f
	}
	token, ok := fd.acceptSetToken(value)
	if !ok {
		return f
	}
	out := f.clone()
	members := out.sets[key]
	if _, present := members[token]; present {
		delete(members, token)
		if len(members) == 0 {
			delete(out.sets, key)
		}
		return out
	}
	if members == nil {
		members = make(map[string]struct{})
		out.sets[key] = members
	}
	members[token] = struct{}{}
	return out
}

// WithText sets a text field; a blank value clears it.
func (f Filters) WithText(key, value string) Filters {
	if _, ok := f.field(key, KindText); !ok {
		return f
	}
	out := f.clone()
	if v, ok := normalizeText(value); ok {
		out.texts[key] = v
	} else {
		delete(out.texts, key)
	}
	return out
}

// WithRange sets a date range field.
func (f Filters) WithRange(key string, r DateRange) Filters {
	if _, ok := f.field(key, KindDateRange); !ok {
		return f
	}
	out := f.clone()
	r = DateRange{Start: validDate(r.Start), End: validDate(r.End)}
	if r.IsEmpty() {
		delete(out.ranges, key)
	} else {
		out.ranges[key] = r
	}
	return out
}

// WithSort sets a sort field; non-members select the default.
func (f Filters) WithSort(key, value string) Filters {
	fd, ok := f.field(key, KindSort)
	if !ok {
		return f
	}
	out := f.clone()
	out.sorts[key] = fd.sortValue(value)
	return out
}

// Clear resets the given fields, or every non-sort field when keys is empty.
func (f Filters) Clear(keys ...string) Filters {
	if f.spec == nil {
		return f
	}
	out := f.clone()
	if len(keys) == 0 {
		for _, fd := range f.spec.fields {
			if fd.Kind != KindSort {
				keys = append(keys, fd.Key)
			}
		}
	}
	for _, k := range keys {
		fd, ok := f.spec.Field(k)
		if !ok {
			continue
		}
		delete(out.sets, k)
		delete(out.texts, k)
		delete(out.dates, k)
		delete(out.ranges, k)
		if fd.Kind == KindSort {
			out.sorts[k] = fd.Default
		}
	}
	return out
}

func (f Filters) field(key string, kinds ...Kind) (Field, bool) {
	if f.spec == nil {
		return Field{}, false
	}
	fd, ok := f.spec.Field(key)
	if !ok {
		return Field{}, false
	}
	for _, k := range kinds {
		if fd.Kind == k {
			return fd, true
		}
	}
	return Field{}, false
}

func validDate(d civil.Date) civil.Date {
	if d == (civil.Date{}) || !d.IsValid() || d.Year < 0 || d.Year > 9999 {
		return civil.Date{}
	}
	return d
}
