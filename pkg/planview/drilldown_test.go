package planview

import (
	"testing"

	"github.com/arnavshah/planning-view-go/pkg/models"
)

func TestDrillDown_TeamAndOrderToggleIndependently(t *testing.T) {
	a := NewAggregator(nil)
	combined := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 3, 6),
		result(2, "2024-01-10", teamB, productY, 2, 1),
	})[0]
	d := a.NewDrillDown()

	if d.State() != Collapsed {
		t.Fatalf("Expected collapsed, got %s", d.State())
	}

	stats, expanded := d.ToggleTeam(combined.TeamsDayWork[0])
	if !expanded || stats.TotalHours != 3 {
		t.Errorf("Expected team A expanded with 3h, got %v %v", expanded, stats)
	}

	if !d.ToggleOrder(100) || d.State() != TeamAndOrderExpanded {
		t.Errorf("Expected team and order expanded, got %s", d.State())
	}

	// a new team replaces the previous one
	d.ToggleTeam(combined.TeamsDayWork[1])
	if id, _ := d.ExpandedTeam(); id != teamB.ID {
		t.Errorf("Expected team B expanded, got %d", id)
	}

	// re-selecting collapses
	if _, expanded := d.ToggleTeam(combined.TeamsDayWork[1]); expanded {
		t.Errorf("Expected team B to collapse")
	}
	if d.State() != OrderExpanded {
		t.Errorf("Expected only the order expanded, got %s", d.State())
	}

	d.Close()
	if d.State() != Collapsed {
		t.Errorf("Expected collapsed after Close, got %s", d.State())
	}
	d.Close()
	if _, ok := d.ExpandedOrder(); ok {
		t.Errorf("Expected no expanded order")
	}
}

func TestDrillDown_OrderSingleSelect(t *testing.T) {
	a := NewAggregator(nil)
	combined := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 3, 6),
	})[0]
	d := a.NewDrillDown()

	d.ToggleOrder(100)
	if !d.ToggleOrder(101) {
		t.Fatalf("Expected order 101 expanded")
	}
	if id, ok := d.ExpandedOrder(); !ok || id != 101 {
		t.Errorf("Expected order 101 to replace 100, got %d %v", id, ok)
	}
	if d.State() != OrderExpanded {
		t.Errorf("Expected one order expanded, got %s", d.State())
	}

	if d.ToggleOrder(101) {
		t.Errorf("Expected order 101 to collapse")
	}
	if d.State() != Collapsed {
		t.Errorf("Expected collapsed, got %s", d.State())
	}

	// with a team open, collapsing the order leaves the team expanded
	d.ToggleTeam(combined.TeamsDayWork[0])
	d.ToggleOrder(100)
	d.ToggleOrder(101)
	if id, _ := d.ExpandedOrder(); id != 101 {
		t.Errorf("Expected order 101 expanded, got %d", id)
	}
	d.ToggleOrder(101)
	if d.State() != TeamExpanded {
		t.Errorf("Expected only the team expanded, got %s", d.State())
	}
}
