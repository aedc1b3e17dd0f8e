package planview

import (
	"math"
	"testing"

	"github.com/arnavshah/planning-view-go/pkg/models"
)

var (
	teamA = &models.Team{ID: 1, Name: "Brigade A", TeamType: models.TeamProduction}
	teamB = &models.Team{ID: 2, Name: "Brigade B", TeamType: models.TeamAssembly}

	productX = &models.Product{ID: 10, Name: "Valve"}
	productY = &models.Product{ID: 11, Name: "Pump"}
)

func session() *models.ProductionSession {
	return &models.ProductionSession{
		ID:   7,
		Name: "March batch",
		SessionOrders: []models.SessionOrder{
			{ID: 100, Product: productX, Quantity: 40},
			{ID: 101, Product: productY, Quantity: 10},
		},
	}
}

func result(id int64, date string, team *models.Team, product *models.Product, hours, qty float64) models.OptimizationResult {
	return models.OptimizationResult{
		ID:                id,
		WorkDate:          date,
		ProductionType:    "serial",
		PlannedHours:      hours,
		PlannedQuantity:   qty,
		ProductionSession: session(),
		Team:              team,
		Product:           product,
	}
}

func TestCombine_GroupsByDateThenTeam(t *testing.T) {
	records := []models.OptimizationResult{
		result(1, "2024-01-11", teamA, productX, 4, 10),
		result(2, "2024-01-10", teamA, productX, 6, 12),
		result(3, "2024-01-10", teamB, productY, 2, 3),
	}

	a := NewAggregator(nil)
	combined := a.Combine(records)

	if len(combined) != 2 {
		t.Fatalf("Expected 2 date groups, got %d", len(combined))
	}
	if combined[0].WorkDate != "2024-01-10" || combined[1].WorkDate != "2024-01-11" {
		t.Errorf("Expected dates in ascending order, got %s then %s", combined[0].WorkDate, combined[1].WorkDate)
	}
	if len(combined[0].TeamsDayWork) != 2 {
		t.Errorf("Expected 2 teams on 2024-01-10, got %d", len(combined[0].TeamsDayWork))
	}
	if combined[0].TotalHours != 8 || combined[0].TotalQuantity != 15 {
		t.Errorf("Expected totals 8h/15pcs, got %fh/%fpcs", combined[0].TotalHours, combined[0].TotalQuantity)
	}
	if len(combined[0].SessionOrders) != 2 {
		t.Errorf("Expected session orders from the first record, got %d", len(combined[0].SessionOrders))
	}
}

func TestCombine_AppendsToSeenTeam(t *testing.T) {
	records := []models.OptimizationResult{
		result(1, "2024-01-10", teamB, productX, 1, 1),
		result(2, "2024-01-10", teamA, productX, 1, 1),
		result(3, "2024-01-10", teamB, productY, 1, 1),
	}

	combined := NewAggregator(nil).Combine(records)
	teams := combined[0].TeamsDayWork

	if teams[0].Team.ID != teamB.ID || teams[1].Team.ID != teamA.ID {
		t.Errorf("Expected teams in first-seen order B, A")
	}
	if len(teams[0].OrdersWork) != 2 {
		t.Errorf("Expected 2 order works for team B, got %d", len(teams[0].OrdersWork))
	}
	if teams[0].OrdersWork[1].Product.ID != productY.ID {
		t.Errorf("Expected the second order work of team B to be the pump")
	}
}

func TestCombine_Empty(t *testing.T) {
	combined := NewAggregator(nil).Combine(nil)
	if combined == nil || len(combined) != 0 {
		t.Errorf("Expected an empty non-nil result, got %v", combined)
	}
}

func TestCombine_ReplacesPreviousResult(t *testing.T) {
	a := NewAggregator(nil)
	a.Combine([]models.OptimizationResult{result(1, "2024-01-10", teamA, productX, 1, 1)})
	a.Combine([]models.OptimizationResult{result(2, "2024-02-01", teamB, productY, 1, 1)})

	got := a.Combined()
	if len(got) != 1 || got[0].WorkDate != "2024-02-01" {
		t.Errorf("Expected only the latest run to remain, got %v", got)
	}
}

func TestCombine_RecordWithoutTeamCountsInTotalsOnly(t *testing.T) {
	records := []models.OptimizationResult{
		result(1, "2024-01-10", nil, productX, 3, 5),
		result(2, "2024-01-10", teamA, productX, 1, 1),
	}

	combined := NewAggregator(nil).Combine(records)

	if len(combined[0].TeamsDayWork) != 1 {
		t.Errorf("Expected only team A, got %d teams", len(combined[0].TeamsDayWork))
	}
	if combined[0].TotalHours != 4 {
		t.Errorf("Expected date total of 4h, got %f", combined[0].TotalHours)
	}
}

func TestCombine_InvalidAmountsCountAsZero(t *testing.T) {
	records := []models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, math.NaN(), -3),
		result(2, "2024-01-10", teamA, productX, 2, 4),
	}

	combined := NewAggregator(nil).Combine(records)

	if combined[0].TotalHours != 2 || combined[0].TotalQuantity != 4 {
		t.Errorf("Expected 2h/4pcs, got %fh/%fpcs", combined[0].TotalHours, combined[0].TotalQuantity)
	}
}

func TestCombine_TotalsIndependentOfOrder(t *testing.T) {
	records := []models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 1.5, 2),
		result(2, "2024-01-10", teamB, productY, 2.5, 3),
		result(3, "2024-01-10", teamA, productY, 4, 7),
	}
	reversed := []models.OptimizationResult{records[2], records[1], records[0]}

	first := NewAggregator(nil).Combine(records)[0]
	second := NewAggregator(nil).Combine(reversed)[0]

	if first.TotalHours != second.TotalHours || first.TotalQuantity != second.TotalQuantity {
		t.Errorf("Expected equal totals, got %f/%f and %f/%f",
			first.TotalHours, first.TotalQuantity, second.TotalHours, second.TotalQuantity)
	}
}

func TestTeamStats_CachedUntilCombine(t *testing.T) {
	a := NewAggregator(nil)
	combined := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 3, 6),
		result(2, "2024-01-10", teamA, productY, 2, 1),
	})
	tdw := combined[0].TeamsDayWork[0]

	stats := a.TeamStats(tdw)
	if stats.TotalHours != 5 || stats.TotalQuantity != 7 {
		t.Fatalf("Expected 5h/7pcs, got %fh/%fpcs", stats.TotalHours, stats.TotalQuantity)
	}

	// a changed work list with the same key returns the memoized value
	tdw.OrdersWork = tdw.OrdersWork[:1]
	if again := a.TeamStats(tdw); again != stats {
		t.Errorf("Expected cached stats %v, got %v", stats, again)
	}

	a.Combine(nil)
	if fresh := a.TeamStats(tdw); fresh.TotalHours != 3 {
		t.Errorf("Expected recomputed 3h after Combine, got %f", fresh.TotalHours)
	}
}

func TestTeamStats_InvalidateRecomputes(t *testing.T) {
	a := NewAggregator(nil)
	combined := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 3, 6),
		result(2, "2024-01-10", teamA, productY, 2, 1),
	})
	tdw := combined[0].TeamsDayWork[0]

	if stats := a.TeamStats(tdw); stats.TotalHours != 5 {
		t.Fatalf("Expected 5h, got %f", stats.TotalHours)
	}

	tdw.OrdersWork = tdw.OrdersWork[1:]
	if cached := a.TeamStats(tdw); cached.TotalHours != 5 {
		t.Errorf("Expected cached 5h before invalidation, got %f", cached.TotalHours)
	}

	a.InvalidateStats()
	fresh := a.TeamStats(tdw)
	if fresh.TotalHours != 2 || fresh.TotalQuantity != 1 {
		t.Errorf("Expected recomputed 2h/1pcs, got %fh/%fpcs", fresh.TotalHours, fresh.TotalQuantity)
	}
}

func TestTeamStats_SameTeamDifferentDates(t *testing.T) {
	a := NewAggregator(nil)
	combined := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 3, 6),
		result(2, "2024-01-11", teamA, productX, 8, 2),
	})

	first := a.TeamStats(combined[0].TeamsDayWork[0])
	second := a.TeamStats(combined[1].TeamsDayWork[0])

	if first.TotalHours != 3 || second.TotalHours != 8 {
		t.Errorf("Expected per-date stats 3h and 8h, got %f and %f", first.TotalHours, second.TotalHours)
	}
}

func TestUniqueProductCount(t *testing.T) {
	tdw := models.TeamDayWork{
		Team: teamA,
		OrdersWork: []models.OrderWork{
			{Product: productX}, {Product: productY}, {Product: productX}, {Product: nil},
		},
	}
	if n := NewAggregator(nil).UniqueProductCount(tdw); n != 2 {
		t.Errorf("Expected 2 distinct products, got %d", n)
	}
}

func TestTeamsWorkingOnOrder(t *testing.T) {
	a := NewAggregator(nil)
	combined := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 1, 5),
		result(2, "2024-01-10", teamB, productY, 1, 3),
		result(3, "2024-01-10", teamA, productX, 1, 2),
		result(4, "2024-01-10", teamB, productX, 1, 4),
	})[0]

	shares := a.TeamsWorkingOnOrder(combined, combined.SessionOrders[0])

	if len(shares) != 2 {
		t.Fatalf("Expected 2 teams on the valve order, got %d", len(shares))
	}
	if shares[0].Team.ID != teamA.ID || shares[0].TotalQuantity != 7 {
		t.Errorf("Expected team A with 7 pcs, got team %d with %f", shares[0].Team.ID, shares[0].TotalQuantity)
	}
	if shares[1].Team.ID != teamB.ID || shares[1].TotalQuantity != 4 {
		t.Errorf("Expected team B with 4 pcs, got team %d with %f", shares[1].Team.ID, shares[1].TotalQuantity)
	}

	none := a.TeamsWorkingOnOrder(combined, models.SessionOrder{ID: 9, Product: &models.Product{ID: 99}})
	if len(none) != 0 {
		t.Errorf("Expected no teams for an unplanned product, got %d", len(none))
	}
}

func TestLoadBalance(t *testing.T) {
	a := NewAggregator(nil)

	even := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 4, 1),
		result(2, "2024-01-10", teamB, productX, 4, 1),
	})[0]
	if score := a.LoadBalance(even); score != 100.0 {
		t.Errorf("Expected 100%% for equal hours, got %f", score)
	}

	uneven := a.Combine([]models.OptimizationResult{
		result(1, "2024-01-10", teamA, productX, 6, 1),
		result(2, "2024-01-10", teamB, productX, 2, 1),
	})[0]
	// mean 4, population std dev 2
	if score := a.LoadBalance(uneven); math.Abs(score-50.0) > 1e-9 {
		t.Errorf("Expected 50%%, got %f", score)
	}

	if score := a.LoadBalance(models.OptimizationCombined{}); score != 100.0 {
		t.Errorf("Expected 100%% for an empty date, got %f", score)
	}
}
