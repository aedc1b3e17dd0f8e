package planview

import "github.com/arnavshah/planning-view-go/pkg/models"

// DrillState describes which parts of a plan are expanded
type DrillState string

const (
	Collapsed            DrillState = "collapsed"
	TeamExpanded         DrillState = "teamExpanded"
	OrderExpanded        DrillState = "orderExpanded"
	TeamAndOrderExpanded DrillState = "teamAndOrderExpanded"
)

// DrillDown tracks the expanded team and the expanded order of one plan
// view. Each is single-select and toggles independently of the other.
type DrillDown struct {
	agg   *Aggregator
	team  *int64
	order *int64
}

// NewDrillDown starts a collapsed drill-down backed by the aggregator's stats cache
func (a *Aggregator) NewDrillDown() *DrillDown {
	return &DrillDown{agg: a}
}

// ToggleTeam expands tdw's team, or collapses it when it is already
// expanded. On expansion the team's statistics are computed and returned.
func (d *DrillDown) ToggleTeam(tdw models.TeamDayWork) (models.TeamStats, bool) {
	if tdw.Team == nil {
		return models.TeamStats{}, false
	}
	if d.team != nil && *d.team == tdw.Team.ID {
		d.team = nil
		return models.TeamStats{}, false
	}
	id := tdw.Team.ID
	d.team = &id
	return d.agg.TeamStats(tdw), true
}

// ToggleOrder expands orderID, or collapses it when it is already expanded.
// It reports whether the order is expanded afterwards.
func (d *DrillDown) ToggleOrder(orderID int64) bool {
	if d.order != nil && *d.order == orderID {
		d.order = nil
		return false
	}
	d.order = &orderID
	return true
}

// Close collapses everything
func (d *DrillDown) Close() {
	d.team = nil
	d.order = nil
}

// ExpandedTeam returns the expanded team id, if any
func (d *DrillDown) ExpandedTeam() (int64, bool) {
	if d.team == nil {
		return 0, false
	}
	return *d.team, true
}

// ExpandedOrder returns the expanded order id, if any
func (d *DrillDown) ExpandedOrder() (int64, bool) {
	if d.order == nil {
		return 0, false
	}
	return *d.order, true
}

// State summarizes what is expanded
func (d *DrillDown) State() DrillState {
	switch {
	case d.team != nil && d.order != nil:
		return TeamAndOrderExpanded
	case d.team != nil:
		return TeamExpanded
	case d.order != nil:
		return OrderExpanded
	}
	return Collapsed
}
