package searchparams

// Kind describes how a field is read from and written to the query string.
type Kind int

const (
	// KindEnumSet holds zero or more members of a fixed enumeration.
	KindEnumSet Kind = iota + 1
	// KindIDSet holds zero or more UUIDs.
	KindIDSet
	// KindText holds an optional free-text value.
	KindText
	// KindDate holds an optional calendar date.
	KindDate
	// KindDateRange holds an optional start and an optional end date.
	KindDateRange
	// KindSort holds exactly one member of a fixed enumeration.
	KindSort
)

func (k Kind) String() string {
	switch k {
	case KindEnumSet:
		return "enum-set"
	case KindIDSet:
		return "id-set"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindDateRange:
		return "date-range"
	case KindSort:
		return "sort"
	default:
		return "unknown"
	}
}

const (
	rangeStartSuffix = "Start"
	rangeEndSuffix   = "End"
)

// Field declares one filterable or sortable field of a Spec.
//
// For KindDateRange the Key is a prefix: the bounds travel under Key+"Start"
// and Key+"End".
type Field struct {
	Key     string   `validate:"required,printascii,excludesall=&=#?"`
	Kind    Kind     `validate:"min=1,max=6"`
	Values  []string `validate:"omitempty,unique,dive,required,printascii"`
	Default string   `validate:"omitempty,printascii"`
}

// EnumSet declares a multi-valued field restricted to values, listed in display order.
func EnumSet(key string, values ...string) Field {
	return Field{Key: key, Kind: KindEnumSet, Values: values}
}

// IDSet declares a multi-valued field holding UUIDs.
func IDSet(key string) Field {
	return Field{Key: key, Kind: KindIDSet}
}

// Text declares an optional free-text field.
func Text(key string) Field {
	return Field{Key: key, Kind: KindText}
}

// Date declares an optional ISO date field.
func Date(key string) Field {
	return Field{Key: key, Kind: KindDate}
}

// DateRangeField declares an inclusive date range carried by two query keys.
func DateRangeField(key string) Field {
	return Field{Key: key, Kind: KindDateRange}
}

// Sort declares a single-valued field that falls back to def.
func Sort(key, def string, values ...string) Field {
	return Field{Key: key, Kind: KindSort, Values: values, Default: def}
}

// StartKey returns the query key of a date range lower bound.
func (f Field) StartKey() string { return f.Key + rangeStartSuffix }

// EndKey returns the query key of a date range upper bound.
func (f Field) EndKey() string { return f.Key + rangeEndSuffix }

// wireKeys lists the query keys owned by the field.
func (f Field) wireKeys() []string {
	if f.Kind == KindDateRange {
		return []string{f.StartKey(), f.EndKey()}
	}
	return []string{f.Key}
}

func (f Field) isMember(value string) bool {
	for _, v := range f.Values {
		if v == value {
			return true
		}
	}
	return false
}
