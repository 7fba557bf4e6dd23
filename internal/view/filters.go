package view

import (
	"net/url"

	"github.com/animeaux/animeaux/internal/searchparams"
	"github.com/animeaux/animeaux/internal/shared"
)

// FilterOption is one checkbox or radio of a filter group.
type FilterOption struct {
	Value   string
	Label   string
	Checked bool
}

// FilterGroup is one collapsible block of the filter form.
type FilterGroup struct {
	Key     string
	Label   string
	Options []FilterOption
	Active  bool
}

// Options lists every enum value in declared order with its checked state in f.
func Options[T ~string](all []T, label func(T) string, f searchparams.Filters, key string) []FilterOption {
	out := make([]FilterOption, len(all))
	for i, v := range all {
		out[i] = FilterOption{Value: string(v), Label: label(v), Checked: f.Has(key, string(v))}
	}
	return out
}

// SortOptions lists every sort value with the selected one checked.
func SortOptions[T ~string](all []T, label func(T) string, selected T) []FilterOption {
	out := make([]FilterOption, len(all))
	for i, v := range all {
		out[i] = FilterOption{Value: string(v), Label: label(v), Checked: v == selected}
	}
	return out
}

// Group builds a FilterGroup for an enum set field.
func Group[T ~string](label string, all []T, valueLabel func(T) string, f searchparams.Filters, key string) FilterGroup {
	return FilterGroup{
		Key:     key,
		Label:   label,
		Options: Options(all, valueLabel, f, key),
		Active:  f.IsActive(key),
	}
}

// PageLinks holds the pagination state and the hrefs of neighbouring pages.
type PageLinks struct {
	shared.Pagination
	Prev string
	Next string
}

// NewPageLinks builds links that only change the page key of current.
func NewPageLinks(p shared.Pagination, current url.Values) PageLinks {
	links := PageLinks{Pagination: p}
	if p.HasPrev() {
		links.Prev = "?" + shared.PageQuery(current, p.Page-1)
	}
	if p.HasNext() {
		links.Next = "?" + shared.PageQuery(current, p.Page+1)
	}
	return links
}
