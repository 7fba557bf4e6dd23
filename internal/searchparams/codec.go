package searchparams

import (
	"net/url"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Parse decodes values into Filters. It never fails: unknown enum tokens and
// malformed ids or dates are dropped, blank text is absent and an invalid or
// missing sort token selects the declared default.
func (s *Spec) Parse(values url.Values) Filters {
	f := s.Empty()
	for _, fd := range s.fields {
		switch fd.Kind {
		case KindEnumSet, KindIDSet:
			for _, raw := range values[fd.Key] {
				token, ok := fd.acceptSetToken(raw)
				if !ok {
					continue
				}
				members := f.sets[fd.Key]
				if members == nil {
					members = make(map[string]struct{})
					f.sets[fd.Key] = members
				}
				members[token] = struct{}{}
			}
		case KindText:
			if v, ok := normalizeText(first(values, fd.Key)); ok {
				f.texts[fd.Key] = v
			}
		case KindDate:
			if d, ok := parseDate(first(values, fd.Key)); ok {
				f.dates[fd.Key] = d
			}
		case KindDateRange:
			var r DateRange
			if d, ok := parseDate(first(values, fd.StartKey())); ok {
				r.Start = d
			}
			if d, ok := parseDate(first(values, fd.EndKey())); ok {
				r.End = d
			}
			if !r.IsEmpty() {
				f.ranges[fd.Key] = r
			}
		case KindSort:
			f.sorts[fd.Key] = fd.sortValue(first(values, fd.Key))
		}
	}
	return f
}

// ParseQuery decodes a raw query string. A query that does not decode as a
// whole still yields the pairs that did.
func (s *Spec) ParseQuery(rawQuery string) Filters {
	values, _ := url.ParseQuery(rawQuery)
	return s.Parse(values)
}

// Serialize writes f on top of a copy of base. Keys declared by the spec are
// replaced; every other key of base is kept unchanged.
func (f Filters) Serialize(base url.Values) url.Values {
	out := make(url.Values, len(base))
	for k, vs := range base {
		out[k] = append([]string(nil), vs...)
	}
	if f.spec == nil {
		return out
	}
	for _, fd := range f.spec.fields {
		for _, k := range fd.wireKeys() {
			out.Del(k)
		}
		switch fd.Kind {
		case KindEnumSet, KindIDSet:
			for _, v := range f.Set(fd.Key) {
				out.Add(fd.Key, v)
			}
		case KindText:
			if v, ok := f.texts[fd.Key]; ok {
				out.Set(fd.Key, v)
			}
		case KindDate:
			if d, ok := f.dates[fd.Key]; ok {
				out.Set(fd.Key, d.String())
			}
		case KindDateRange:
			r := f.ranges[fd.Key]
			if r.HasStart() {
				out.Set(fd.StartKey(), r.Start.String())
			}
			if r.HasEnd() {
				out.Set(fd.EndKey(), r.End.String())
			}
		case KindSort:
			v := f.Sort(fd.Key)
			if f.spec.policy == SortOmitDefault && v == fd.Default {
				continue
			}
			out.Set(fd.Key, v)
		}
	}
	return out
}

// Query returns the canonical encoded query string of f on top of base.
func (f Filters) Query(base url.Values) string {
	return f.Serialize(base).Encode()
}

// IsCanonical reports whether values already is the serialized form of its own
// parse, considering only the keys the spec owns.
func (s *Spec) IsCanonical(values url.Values) bool {
	canonical := s.Parse(values).Serialize(nil)
	for _, fd := range s.fields {
		for _, k := range fd.wireKeys() {
			got, want := values[k], canonical[k]
			if len(got) != len(want) {
				return false
			}
			for i := range got {
				if got[i] != want[i] {
					return false
				}
			}
		}
	}
	return true
}

func first(values url.Values, key string) string {
	vs := values[key]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

func (fd Field) acceptSetToken(raw string) (string, bool) {
	if fd.Kind == KindIDSet {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return "", false
		}
		return id.String(), true
	}
	if fd.isMember(raw) {
		return raw, true
	}
	return "", false
}

func (fd Field) sortValue(raw string) string {
	if fd.isMember(raw) {
		return raw
	}
	return fd.Default
}

func normalizeText(raw string) (string, bool) {
	v := norm.NFC.String(strings.TrimSpace(raw))
	if v == "" {
		return "", false
	}
	return v, true
}

func parseDate(raw string) (civil.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return civil.Date{}, false
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		return civil.Date{}, false
	}
	if d = validDate(d); d == (civil.Date{}) {
		return civil.Date{}, false
	}
	return d, true
}
