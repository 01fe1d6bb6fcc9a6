// Package query turns list-request parameters into a filter/sort/projection/pagination
// specification and executes it against any collection that can count and find.
package query

import (
	"sort"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 10
	MaxLimit         = 100
	DefaultSortField = "createdAt"
)

// Filter is a filter tree keyed by field name. Values are literals, []string for
// repeated parameters, or nested maps whose keys are operators.
type Filter map[string]interface{}

// SortKey orders results by one field.
type SortKey struct {
	Field string
	Desc  bool
}

// Spec is the parsed form of a list request.
type Spec struct {
	Filter        Filter
	Sort          []SortKey
	Fields        []string
	ExcludeFields []string
	Page          int
	Limit         int
	Skip          int
	// PageRequested is true when the caller supplied a page parameter.
	PageRequested bool
}

// NewSpec returns a specification with default sort and pagination for the given filter.
func NewSpec(filter Filter) Spec {
	return Spec{
		Filter: Translate(filter),
		Sort:   []SortKey{{Field: DefaultSortField, Desc: true}},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}
}

// Normalized clamps pagination values and recomputes the skip count.
func (s Spec) Normalized() Spec {
	if s.Page < 1 {
		s.Page = DefaultPage
	}
	if s.Limit < 1 {
		s.Limit = DefaultLimit
	}
	if s.Limit > MaxLimit {
		s.Limit = MaxLimit
	}
	if len(s.Sort) == 0 {
		s.Sort = []SortKey{{Field: DefaultSortField, Desc: true}}
	}
	if s.Filter == nil {
		s.Filter = Filter{}
	}
	s.Skip = (s.Page - 1) * s.Limit
	return s
}

// With returns a copy of the spec with additional equality constraints merged into the filter.
func (s Spec) With(extra Filter) Spec {
	merged := make(Filter, len(s.Filter)+len(extra))
	for k, v := range s.Filter {
		merged[k] = v
	}
	for k, v := range Translate(extra) {
		merged[k] = v
	}
	s.Filter = merged
	return s
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
