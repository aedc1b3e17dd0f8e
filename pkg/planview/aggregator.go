// Package planview turns flat optimization results into the per-date,
// per-team plan shown to planners, and builds the absence-aware optimize
// request.
package planview

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/arnavshah/planning-view-go/internal/metrics"
	"github.com/arnavshah/planning-view-go/pkg/models"
)

// Aggregator builds OptimizationCombined groups and memoizes team statistics.
// It is owned by one caller and is not safe for concurrent use.
type Aggregator struct {
	logger   *zap.Logger
	stats    *cache.Cache
	combined []models.OptimizationCombined
}

// NewAggregator creates a new aggregator. A nil logger discards output.
func NewAggregator(logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		logger:   logger,
		stats:    cache.New(cache.NoExpiration, 0),
		combined: []models.OptimizationCombined{},
	}
}

type dateGroup struct {
	combined   models.OptimizationCombined
	teamIndex  map[int64]int
	hasSession bool
}

// Combine groups records by work date and, within a date, by team in
// first-seen order. The result is sorted by work date and replaces any
// previous result; cached team statistics are dropped.
func (a *Aggregator) Combine(records []models.OptimizationResult) []models.OptimizationCombined {
	a.InvalidateStats()

	groups := make(map[string]*dateGroup)
	skipped := 0

	for _, rec := range records {
		g, ok := groups[rec.WorkDate]
		if !ok {
			g = &dateGroup{
				combined: models.OptimizationCombined{
					WorkDate:      rec.WorkDate,
					SessionOrders: []models.SessionOrder{},
					TeamsDayWork:  []models.TeamDayWork{},
				},
				teamIndex: make(map[int64]int),
			}
			groups[rec.WorkDate] = g
		}

		// every record of a run shares one session, so the first one is representative
		if !g.hasSession && rec.ProductionSession != nil {
			if orders := rec.ProductionSession.SessionOrders; orders != nil {
				g.combined.SessionOrders = slices.Clone(orders)
			}
			g.hasSession = true
		}

		g.combined.TotalHours += amount(rec.PlannedHours)
		g.combined.TotalQuantity += amount(rec.PlannedQuantity)

		if rec.Team == nil {
			skipped++
			continue
		}

		work := models.OrderWork{
			Product:         rec.Product,
			PlannedHours:    rec.PlannedHours,
			PlannedQuantity: rec.PlannedQuantity,
			WorkDate:        rec.WorkDate,
			ProductionType:  rec.ProductionType,
			DayIndex:        rec.DayIndex,
		}

		if idx, seen := g.teamIndex[rec.Team.ID]; seen {
			tdw := &g.combined.TeamsDayWork[idx]
			tdw.OrdersWork = append(tdw.OrdersWork, work)
			continue
		}
		g.teamIndex[rec.Team.ID] = len(g.combined.TeamsDayWork)
		g.combined.TeamsDayWork = append(g.combined.TeamsDayWork, models.TeamDayWork{
			Team:       rec.Team,
			OrdersWork: []models.OrderWork{work},
		})
	}

	result := make([]models.OptimizationCombined, 0, len(groups))
	for _, g := range groups {
		result = append(result, g.combined)
	}
	// YYYY-MM-DD sorts chronologically as a string
	slices.SortFunc(result, func(x, y models.OptimizationCombined) int {
		return cmp.Compare(x.WorkDate, y.WorkDate)
	})

	if skipped > 0 {
		a.logger.Debug("skipped result records without a team",
			zap.Int("skipped", skipped),
			zap.Int("records", len(records)),
		)
	}
	a.logger.Debug("combined optimization results",
		zap.Int("records", len(records)),
		zap.Int("dates", len(result)),
	)
	metrics.RecordCombine(len(records))

	a.combined = result
	return result
}

// Combined returns the result of the last Combine call
func (a *Aggregator) Combined() []models.OptimizationCombined {
	return a.combined
}

// TeamStats sums the hours and quantity of tdw. The result is cached per
// work date and team until the next Combine or InvalidateStats.
func (a *Aggregator) TeamStats(tdw models.TeamDayWork) models.TeamStats {
	if tdw.Team == nil {
		return sumOrdersWork(tdw.OrdersWork)
	}

	key := statsKey(tdw)
	if cached, found := a.stats.Get(key); found {
		metrics.RecordStatsLookup(true)
		return cached.(models.TeamStats)
	}
	metrics.RecordStatsLookup(false)

	s := sumOrdersWork(tdw.OrdersWork)
	a.stats.Set(key, s, cache.NoExpiration)
	return s
}

// InvalidateStats drops every cached team statistic
func (a *Aggregator) InvalidateStats() {
	a.stats.Flush()
}

// UniqueProductCount counts the distinct products tdw works on
func (a *Aggregator) UniqueProductCount(tdw models.TeamDayWork) int {
	seen := make(map[int64]struct{}, len(tdw.OrdersWork))
	for _, w := range tdw.OrdersWork {
		if w.Product == nil {
			continue
		}
		seen[w.Product.ID] = struct{}{}
	}
	return len(seen)
}

// TeamsWorkingOnOrder lists the teams of combined that produce the order's
// product, with the quantity each of them plans for it.
func (a *Aggregator) TeamsWorkingOnOrder(combined models.OptimizationCombined, order models.SessionOrder) []models.TeamOrderShare {
	shares := []models.TeamOrderShare{}
	if order.Product == nil {
		return shares
	}

	for _, tdw := range combined.TeamsDayWork {
		matched := false
		var quantity float64
		for _, w := range tdw.OrdersWork {
			if w.Product != nil && w.Product.ID == order.Product.ID {
				matched = true
				quantity += amount(w.PlannedQuantity)
			}
		}
		if matched {
			shares = append(shares, models.TeamOrderShare{
				Team:          tdw.Team,
				TotalQuantity: quantity,
			})
		}
	}
	return shares
}

// LoadBalance returns a percentage (0-100) representing how evenly planned
// hours are spread across the teams of one work date. 100% means every team
// carries the same hours.
func (a *Aggregator) LoadBalance(combined models.OptimizationCombined) float64 {
	if len(combined.TeamsDayWork) == 0 {
		return 100.0
	}

	hours := make([]float64, 0, len(combined.TeamsDayWork))
	for _, tdw := range combined.TeamsDayWork {
		hours = append(hours, a.TeamStats(tdw).TotalHours)
	}

	mean, stdDev := stat.PopMeanStdDev(hours, nil)
	if mean == 0 {
		return 100.0
	}

	score := (1.0 - (stdDev / mean)) * 100.0
	if score < 0 {
		return 0.0
	}
	return score
}

func sumOrdersWork(works []models.OrderWork) models.TeamStats {
	var s models.TeamStats
	for _, w := range works {
		s.TotalHours += amount(w.PlannedHours)
		s.TotalQuantity += amount(w.PlannedQuantity)
	}
	return s
}

func statsKey(tdw models.TeamDayWork) string {
	workDate := ""
	if len(tdw.OrdersWork) > 0 {
		workDate = tdw.OrdersWork[0].WorkDate
	}
	return fmt.Sprintf("%s/%d", workDate, tdw.Team.ID)
}

// amount treats missing or invalid planned values as zero
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
