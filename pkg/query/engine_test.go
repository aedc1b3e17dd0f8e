package query

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID     int64
	Name   string
	Hours  float64
	Active bool
	Team   string
}

func (r row) GetID() int64 { return r.ID }

var rowFields = Fields[row]{
	"name":   Text(func(r row) string { return r.Name }),
	"hours":  Number(func(r row) float64 { return r.Hours }),
	"active": Bool(func(r row) bool { return r.Active }),
	"team":   Text(func(r row) string { return r.Team }),
}

func sampleRows() []row {
	return []row{
		{ID: 3, Name: "charlie", Hours: 5, Active: true, Team: "A"},
		{ID: 1, Name: "alpha", Hours: 8, Active: true, Team: "B"},
		{ID: 4, Name: "Bravo", Hours: 2, Active: false, Team: "A"},
		{ID: 2, Name: "delta", Hours: 8, Active: false, Team: "C"},
	}
}

func ids(items []row) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestInitialize_DefaultsToIDOrder(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(e.Items()))
	assert.Equal(t, SortState{Direction: Default}, e.SortState())
}

func TestInitialize_CopiesSource(t *testing.T) {
	src := sampleRows()
	e := New(rowFields)
	e.Initialize(src, nil)

	src[0].Name = "mutated"
	for _, it := range e.Items() {
		assert.NotEqual(t, "mutated", it.Name)
	}
}

func TestFilter_BooleanField(t *testing.T) {
	e := New(Fields[row]{"active": Bool(func(r row) bool { return r.Active })})
	e.Initialize([]row{{ID: 1, Active: true}, {ID: 2, Active: false}}, FilterState{"active": {true}})

	require.Len(t, e.Items(), 1)
	assert.Equal(t, int64(1), e.Items()[0].ID)
}

func TestFilter_ConjunctionAcrossFields(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.AddFilterValue("team", "A")
	e.AddFilterValue("team", "B")
	assert.Equal(t, []int64{1, 3, 4}, ids(e.Items()))

	e.AddFilterValue("active", true)
	assert.Equal(t, []int64{1, 3}, ids(e.Items()))
}

func TestFilter_EmptySetIsUnconstrained(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.AddFilterValue("team", "A")
	e.RemoveFilterValue("team", "A")

	assert.False(t, e.IsFilterActive("team"))
	fs := e.FilterState()
	values, present := fs["team"]
	assert.True(t, present, "field key must stay after its last value is removed")
	assert.Empty(t, values)
	assert.Len(t, e.Items(), 4)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.AddFilterValue("team", "A")
	e.AddFilterValue("team", "A")

	assert.Len(t, e.FilterState()["team"], 1)
}

func TestFilter_RemoveWithoutEntryIsNoop(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.RemoveFilterValue("team", "A")

	_, present := e.FilterState()["team"]
	assert.False(t, present)
}

func TestFilter_Toggle(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.ToggleFilterValue("team", "C")
	assert.True(t, e.IsValueSelected("team", "C"))
	assert.Equal(t, []int64{2}, ids(e.Items()))

	e.ToggleFilterValue("team", "C")
	assert.False(t, e.IsValueSelected("team", "C"))
	assert.Len(t, e.Items(), 4)
}

func TestFilter_NumberValuesNormalized(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.AddFilterValue("hours", 8)
	assert.Equal(t, []int64{1, 2}, ids(e.Items()))
	assert.True(t, e.IsValueSelected("hours", 8.0))
	assert.True(t, e.IsValueSelected("hours", "8"))

	e.AddFilterValue("hours", int64(8))
	assert.Len(t, e.FilterState()["hours"], 1)
}

func TestFilter_NaNIsNeverAllowed(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.AddFilterValue("hours", math.NaN())
	e.AddFilterValue("hours", float32(math.NaN()))

	assert.Empty(t, e.FilterState()["hours"])
	assert.False(t, e.IsFilterActive("hours"))
	assert.Len(t, e.Items(), 4)

	e.Initialize(sampleRows(), FilterState{"hours": {math.NaN(), 8}})
	assert.Equal(t, []any{8.0}, e.FilterState()["hours"])
	assert.Equal(t, []int64{1, 2}, ids(e.Items()))
}

func TestFilter_UnknownFieldIsNoop(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.AddFilterValue("missing", "x")

	assert.True(t, e.IsFilterActive("missing"))
	assert.Len(t, e.Items(), 4)
}

func TestToggleSort_TriStateCycle(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.ToggleSort("name")
	assert.Equal(t, SortState{Field: "name", Direction: Ascending}, e.SortState())
	assert.Equal(t, []string{"alpha", "Bravo", "charlie", "delta"}, names(e.Items()))

	e.ToggleSort("name")
	assert.Equal(t, Descending, e.SortState().Direction)
	assert.Equal(t, []string{"delta", "charlie", "Bravo", "alpha"}, names(e.Items()))

	e.ToggleSort("name")
	assert.Equal(t, SortState{Direction: Default}, e.SortState())
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(e.Items()))
}

func TestResetSort_RestoresIDOrder(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.ToggleSort("hours")
	e.ToggleSort("hours")
	require.Equal(t, []int64{1, 2, 3, 4}, ids(e.Items()), "hours desc with id tie-break")
	e.ToggleSort("name")
	require.Equal(t, []int64{1, 4, 3, 2}, ids(e.Items()))

	e.ResetSort()
	assert.Equal(t, SortState{Direction: Default}, e.SortState())
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(e.Items()))

	// the next toggle starts a fresh cycle
	e.ToggleSort("name")
	assert.Equal(t, SortState{Field: "name", Direction: Ascending}, e.SortState())
}

func TestParseFilters(t *testing.T) {
	filters, err := ParseFilters([]string{"team:A", "team:B", "name:a:b"})
	require.NoError(t, err)
	assert.Equal(t, FilterState{"team": {"A", "B"}, "name": {"a:b"}}, filters)

	_, err = ParseFilters([]string{"teamA"})
	assert.Error(t, err)
	_, err = ParseFilters([]string{":A"})
	assert.Error(t, err)
}

func TestToggleSort_SwitchingFieldStartsAscending(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.ToggleSort("name")
	e.ToggleSort("name")
	e.ToggleSort("hours")

	assert.Equal(t, SortState{Field: "hours", Direction: Ascending}, e.SortState())
	// ties on 8 hours fall back to id order
	assert.Equal(t, []int64{4, 3, 1, 2}, ids(e.Items()))
}

func TestToggleSort_NumericDescendingKeepsIDTieBreak(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.ToggleSort("hours")
	e.ToggleSort("hours")

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(e.Items()))
}

func TestToggleSort_UnknownFieldKeepsIDOrder(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)

	e.ToggleSort("nope")

	assert.Equal(t, []int64{1, 2, 3, 4}, ids(e.Items()))
}

func TestSortAppliesToFilteredSubset(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)
	e.ToggleSort("hours")
	e.AddFilterValue("team", "A")

	assert.Equal(t, []int64{4, 3}, ids(e.Items()))

	e.RemoveFilterValue("team", "A")
	assert.Equal(t, []int64{4, 3, 1, 2}, ids(e.Items()))
}

func TestInitialize_KeepsSortAndFilterState(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)
	e.ToggleSort("hours")
	e.AddFilterValue("active", true)

	next := append(sampleRows(), row{ID: 5, Name: "echo", Hours: 1, Active: true})
	e.Initialize(next, nil)

	assert.Equal(t, []int64{5, 3, 1}, ids(e.Items()))
}

func TestInitialize_MergesFiltersPerField(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), nil)
	e.AddFilterValue("active", true)

	e.Initialize(sampleRows(), FilterState{"team": {"A", "A"}})

	fs := e.FilterState()
	assert.Equal(t, []any{true}, fs["active"])
	assert.Equal(t, []any{"A"}, fs["team"])
	assert.Equal(t, []int64{3}, ids(e.Items()))
}

func TestClearFilters(t *testing.T) {
	e := New(rowFields)
	e.Initialize(sampleRows(), FilterState{"team": {"A"}})

	e.ClearFilters()

	assert.False(t, e.IsFilterActive("team"))
	assert.Len(t, e.Items(), 4)
}

func names(items []row) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}
