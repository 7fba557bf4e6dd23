// Package searchparams maps URL query strings to typed filter and sort state and back.
//
// A Spec declares the fields of one searchable entity. Parse is total: unknown,
// malformed or duplicated values degrade to an empty, absent or default value and
// never produce an error. Serialize rewrites only the keys a Spec owns so several
// specs can share one URL.
package searchparams

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SortPolicy controls whether a sort field equal to its default is written.
type SortPolicy int

const (
	// SortOmitDefault drops the sort key when it holds the default value.
	SortOmitDefault SortPolicy = iota
	// SortAlwaysEmit writes the sort key even when it holds the default value.
	SortAlwaysEmit
)

// Spec is the immutable declaration of the fields of one searchable entity.
type Spec struct {
	name   string
	policy SortPolicy
	fields []Field
	index  map[string]int
}

var fieldValidator = validator.New()

// NewSpec validates the field declarations and returns a Spec.
func NewSpec(name string, policy SortPolicy, fields ...Field) (*Spec, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("searchparams: spec name required")
	}
	s := &Spec{
		name:   name,
		policy: policy,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	wire := make(map[string]string)
	for _, f := range fields {
		if err := fieldValidator.Struct(f); err != nil {
			return nil, fmt.Errorf("searchparams: %s: field %q: %w", name, f.Key, err)
		}
		if err := checkField(f); err != nil {
			return nil, fmt.Errorf("searchparams: %s: %w", name, err)
		}
		if _, dup := s.index[f.Key]; dup {
			return nil, fmt.Errorf("searchparams: %s: duplicate field %q", name, f.Key)
		}
		for _, k := range f.wireKeys() {
			if owner, dup := wire[k]; dup {
				return nil, fmt.Errorf("searchparams: %s: query key %q used by %q and %q", name, k, owner, f.Key)
			}
			wire[k] = f.Key
		}
		f.Values = append([]string(nil), f.Values...)
		s.index[f.Key] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSpec is NewSpec for package-level declarations; it panics on a bad declaration.
func MustSpec(name string, policy SortPolicy, fields ...Field) *Spec {
	s, err := NewSpec(name, policy, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

func checkField(f Field) error {
	switch f.Kind {
	case KindEnumSet:
		if len(f.Values) == 0 {
			return fmt.Errorf("field %q: enumeration required", f.Key)
		}
		if f.Default != "" {
			return fmt.Errorf("field %q: default only applies to sort fields", f.Key)
		}
	case KindSort:
		if len(f.Values) == 0 {
			return fmt.Errorf("field %q: enumeration required", f.Key)
		}
		if !f.isMember(f.Default) {
			return fmt.Errorf("field %q: default %q is not a member", f.Key, f.Default)
		}
	default:
		if len(f.Values) > 0 || f.Default != "" {
			return fmt.Errorf("field %q: %s fields take no enumeration", f.Key, f.Kind)
		}
	}
	return nil
}

// Name returns the spec name.
func (s *Spec) Name() string { return s.name }

// Policy returns the sort default policy.
func (s *Spec) Policy() SortPolicy { return s.policy }

// Fields returns the declared fields in declaration order.
func (s *Spec) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the declaration for key.
func (s *Spec) Field(key string) (Field, bool) {
	i, ok := s.index[key]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Owns reports whether the query key belongs to one of the declared fields.
func (s *Spec) Owns(queryKey string) bool {
	for _, f := range s.fields {
		for _, k := range f.wireKeys() {
			if k == queryKey {
				return true
			}
		}
	}
	return false
}

func (s *Spec) mustField(key string, kinds ...Kind) Field {
	f, ok := s.Field(key)
	if !ok {
		panic(fmt.Sprintf("searchparams: %s: unknown field %q", s.name, key))
	}
	for _, k := range kinds {
		if f.Kind == k {
			return f
		}
	}
	panic(fmt.Sprintf("searchparams: %s: field %q is %s", s.name, key, f.Kind))
}
