package searchparams

import "github.com/google/uuid"

// SetOf returns the members of an enum set field converted to the enum type T.
func SetOf[T ~string](f Filters, key string) []T {
	members := f.Set(key)
	if len(members) == 0 {
		return nil
	}
	out := make([]T, len(members))
	for i, m := range members {
		out[i] = T(m)
	}
	return out
}

// IDsOf returns the members of an id set field.
func IDsOf(f Filters, key string) []uuid.UUID {
	members := f.Set(key)
	if len(members) == 0 {
		return nil
	}
	out := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		// members are canonical, so parsing cannot fail
		if id, err := uuid.Parse(m); err == nil {
			out = append(out, id)
		}
	}
	return out
}

// Strings converts enum values back to their wire tokens.
func Strings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// IDStrings converts ids to their canonical wire form.
func IDStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
