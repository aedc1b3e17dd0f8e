// Package query keeps a filtered and sorted view over an in-memory
// collection of records.
//
// An Engine is owned by a single caller (one page, one request). It is not
// safe for concurrent use.
package query

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Record is anything with a stable unique identifier
type Record interface {
	GetID() int64
}

// Direction of the active sort
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
	Default    Direction = "default"
)

// SortState is the active sort. Field is ignored when Direction is Default.
type SortState struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// FilterState maps a field name to its allowed values. An empty list means
// the field does not restrict the view.
type FilterState map[string][]any

// ParseFilters builds a filter state from "field:value" strings. Values of
// the same field accumulate.
func ParseFilters(raw []string) (FilterState, error) {
	filters := FilterState{}
	for _, f := range raw {
		field, value, ok := strings.Cut(f, ":")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q, expected field:value", f)
		}
		filters[field] = append(filters[field], value)
	}
	return filters, nil
}

type options struct {
	lang language.Tag
}

// Option configures an Engine
type Option func(*options)

// WithLanguage sets the collation language used for text fields
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// Engine maintains the filtered and sorted view of its source collection
type Engine[T Record] struct {
	fields   Fields[T]
	collator *collate.Collator

	sort    SortState
	filters FilterState

	source []T
	view   []T
}

// New creates an engine over the given field registry
func New[T Record](fields Fields[T], opts ...Option) *Engine[T] {
	o := options{lang: language.Und}
	for _, opt := range opts {
		opt(&o)
	}
	if fields == nil {
		fields = Fields[T]{}
	}
	return &Engine[T]{
		fields:   fields,
		collator: collate.New(o.lang),
		sort:     SortState{Direction: Default},
		filters:  FilterState{},
		source:   []T{},
		view:     []T{},
	}
}

// Initialize replaces the source collection. initialFilters, when non-nil,
// are merged into the filter state field by field. Sort state is kept.
func (e *Engine[T]) Initialize(items []T, initialFilters FilterState) {
	e.source = slices.Clone(items)
	if e.source == nil {
		e.source = []T{}
	}
	for field, values := range initialFilters {
		allowed := make([]any, 0, len(values))
		for _, v := range values {
			v = e.normalize(field, v)
			if usable(v) && !slices.Contains(allowed, v) {
				allowed = append(allowed, v)
			}
		}
		e.filters[field] = allowed
	}
	e.apply()
}

// ToggleSort cycles the sort on field: a new field starts ascending, the
// current field goes ascending, descending, then back to identifier order.
func (e *Engine[T]) ToggleSort(field string) {
	if e.sort.Field != field {
		e.sort = SortState{Field: field, Direction: Ascending}
	} else {
		switch e.sort.Direction {
		case Ascending:
			e.sort.Direction = Descending
		case Descending:
			e.sort = SortState{Direction: Default}
		default:
			e.sort = SortState{Field: field, Direction: Ascending}
		}
	}
	e.sortView()
}

// ResetSort returns the view to identifier order
func (e *Engine[T]) ResetSort() {
	e.sort = SortState{Direction: Default}
	e.sortView()
}

// AddFilterValue allows value for field. Adding a value twice is a no-op.
func (e *Engine[T]) AddFilterValue(field string, value any) {
	value = e.normalize(field, value)
	if !usable(value) {
		return
	}
	current := e.filters[field]
	if slices.Contains(current, value) {
		return
	}
	e.filters[field] = append(slices.Clone(current), value)
	e.apply()
}

// RemoveFilterValue disallows value for field. The field stays in the
// filter state even when its allowed set becomes empty.
func (e *Engine[T]) RemoveFilterValue(field string, value any) {
	current, ok := e.filters[field]
	if !ok {
		return
	}
	value = e.normalize(field, value)
	e.filters[field] = slices.DeleteFunc(slices.Clone(current), func(v any) bool {
		return usable(value) && v == value
	})
	e.apply()
}

// ToggleFilterValue adds value when it is not selected and removes it otherwise
func (e *Engine[T]) ToggleFilterValue(field string, value any) {
	if e.IsValueSelected(field, value) {
		e.RemoveFilterValue(field, value)
		return
	}
	e.AddFilterValue(field, value)
}

// ClearFilters empties every allowed set, keeping the field keys
func (e *Engine[T]) ClearFilters() {
	for field := range e.filters {
		e.filters[field] = []any{}
	}
	e.apply()
}

// IsValueSelected reports whether value is in the allowed set of field
func (e *Engine[T]) IsValueSelected(field string, value any) bool {
	value = e.normalize(field, value)
	if !usable(value) {
		return false
	}
	return slices.Contains(e.filters[field], value)
}

// IsFilterActive reports whether field restricts the view
func (e *Engine[T]) IsFilterActive(field string) bool {
	return len(e.filters[field]) > 0
}

// Items returns the current view. Callers must not modify the returned slice.
func (e *Engine[T]) Items() []T {
	return e.view
}

// SortState returns the active sort
func (e *Engine[T]) SortState() SortState {
	return e.sort
}

// FilterState returns a copy of the filter state
func (e *Engine[T]) FilterState() FilterState {
	out := make(FilterState, len(e.filters))
	for field, values := range e.filters {
		out[field] = slices.Clone(values)
	}
	return out
}

func (e *Engine[T]) normalize(field string, v any) any {
	if f, ok := e.fields[field]; ok {
		return f.normalize(v)
	}
	return v
}

func (e *Engine[T]) apply() {
	view := make([]T, 0, len(e.source))
	for _, item := range e.source {
		if e.matches(item) {
			view = append(view, item)
		}
	}
	e.view = view
	e.sortView()
}

// matches is a conjunction over fields with a non-empty allowed set.
// Unregistered fields never restrict the view.
func (e *Engine[T]) matches(item T) bool {
	for field, allowed := range e.filters {
		if len(allowed) == 0 {
			continue
		}
		f, ok := e.fields[field]
		if !ok {
			continue
		}
		if !slices.Contains(allowed, f.value(item)) {
			return false
		}
	}
	return true
}

func (e *Engine[T]) sortView() {
	view := slices.Clone(e.view)
	slices.SortStableFunc(view, e.compare)
	e.view = view
}

// compare orders by the active field and breaks ties by identifier
func (e *Engine[T]) compare(a, b T) int {
	if e.sort.Field != "" && e.sort.Direction != Default {
		if f, ok := e.fields[e.sort.Field]; ok {
			c := f.compare(e.collator, a, b)
			if e.sort.Direction == Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
	}
	return cmp.Compare(a.GetID(), b.GetID())
}

// usable reports whether v can be kept in an allowed set: it must be
// comparable and equal to itself, which rules out NaN.
func usable(v any) bool {
	return isComparable(v) && v == v
}

func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
