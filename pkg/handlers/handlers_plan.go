package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/planning-view-go/pkg/models"
	"github.com/arnavshah/planning-view-go/pkg/planview"
)

type teamPlan struct {
	Team           *models.Team       `json:"team"`
	Stats          models.TeamStats   `json:"stats"`
	UniqueProducts int                `json:"uniqueProducts"`
	OrdersWork     []models.OrderWork `json:"ordersWork"`
}

type datePlan struct {
	WorkDate      string                `json:"workDate"`
	TotalHours    float64               `json:"totalHours"`
	TotalQuantity float64               `json:"totalQuantity"`
	LoadBalance   float64               `json:"loadBalance"`
	SessionOrders []models.SessionOrder `json:"sessionOrders"`
	Teams         []teamPlan            `json:"teams"`
}

type drillDownView struct {
	State     planview.DrillState `json:"state"`
	TeamID    *int64              `json:"teamId,omitempty"`
	OrderID   *int64              `json:"orderId,omitempty"`
	TeamStats *models.TeamStats   `json:"teamStats,omitempty"`
	Shares    []orderShares       `json:"orderTeams,omitempty"`
}

type orderShares struct {
	WorkDate string                  `json:"workDate"`
	Teams    []models.TeamOrderShare `json:"teams"`
}

// SessionPlan combines the optimization results of one production session
func (h *Handler) SessionPlan(c *gin.Context) {
	sessionID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	results, err := h.Planning.ResultsForSession(c.Request.Context(), sessionID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.respondPlan(c, results)
}

// CombineResults combines a posted optimization result list
func (h *Handler) CombineResults(c *gin.Context) {
	var input []models.OptimizationResult
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.respondPlan(c, input)
}

// OrderTeams lists, per work date, the teams producing one session order
func (h *Handler) OrderTeams(c *gin.Context) {
	sessionID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	orderID, ok := int64Param(c, "orderId")
	if !ok {
		return
	}

	results, err := h.Planning.ResultsForSession(c.Request.Context(), sessionID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	agg := planview.NewAggregator(h.logger())
	combined := agg.Combine(results)

	shares, found := orderSharesByDate(agg, combined, orderID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found in session plan"})
		return
	}

	h.RecordUsage(c, len(results), countTeams(combined))
	c.JSON(http.StatusOK, gin.H{"orderId": orderID, "dates": shares})
}

// AbsenceTeams returns every employee grouped by team, all WORKING, as the
// starting point of an absence entry.
func (h *Handler) AbsenceTeams(c *gin.Context) {
	employees, err := h.Planning.ListEmployees(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	teams := planview.GroupEmployeesByTeam(employees)
	h.RecordUsage(c, len(employees), len(teams))
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

// Optimize turns the posted absence entry into absence counts, runs the
// optimization upstream and returns the combined plan of its results.
func (h *Handler) Optimize(c *gin.Context) {
	runID, ok := int64Param(c, "runId")
	if !ok {
		return
	}

	var teams []models.TeamWithEmployees
	if err := c.ShouldBindJSON(&teams); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	for _, t := range teams {
		for _, e := range t.Employees {
			if e.Status != "" && !e.Status.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status " + string(e.Status)})
				return
			}
		}
	}

	req := planview.NewOptimizeRequest(runID, teams)
	results, err := h.Planning.Optimize(c.Request.Context(), req)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	agg := planview.NewAggregator(h.logger())
	combined := agg.Combine(results)
	h.RecordUsage(c, len(results), countTeams(combined))

	c.JSON(http.StatusOK, gin.H{
		"request": req,
		"plan":    buildPlan(agg, combined),
	})
}

// respondPlan combines results and answers with the per-date plan. The
// optional "team" and "order" query parameters expand one team and one
// session order, the way a planner drills into the plan.
func (h *Handler) respondPlan(c *gin.Context, results []models.OptimizationResult) {
	agg := planview.NewAggregator(h.logger())
	combined := agg.Combine(results)

	drill := agg.NewDrillDown()
	view := drillDownView{}

	if raw := c.Query("team"); raw != "" {
		teamID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid team id"})
			return
		}
		if tdw, ok := findTeamDayWork(combined, teamID, c.Query("date")); ok {
			if stats, expanded := drill.ToggleTeam(tdw); expanded {
				view.TeamStats = &stats
			}
		}
	}
	if raw := c.Query("order"); raw != "" {
		orderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		if drill.ToggleOrder(orderID) {
			view.Shares, _ = orderSharesByDate(agg, combined, orderID)
		}
	}

	view.State = drill.State()
	if id, ok := drill.ExpandedTeam(); ok {
		view.TeamID = &id
	}
	if id, ok := drill.ExpandedOrder(); ok {
		view.OrderID = &id
	}

	h.RecordUsage(c, len(results), countTeams(combined))
	c.JSON(http.StatusOK, gin.H{
		"dates":     buildPlan(agg, combined),
		"drillDown": view,
	})
}

func buildPlan(agg *planview.Aggregator, combined []models.OptimizationCombined) []datePlan {
	plan := make([]datePlan, 0, len(combined))
	for _, day := range combined {
		dp := datePlan{
			WorkDate:      day.WorkDate,
			TotalHours:    day.TotalHours,
			TotalQuantity: day.TotalQuantity,
			LoadBalance:   agg.LoadBalance(day),
			SessionOrders: day.SessionOrders,
			Teams:         make([]teamPlan, 0, len(day.TeamsDayWork)),
		}
		for _, tdw := range day.TeamsDayWork {
			dp.Teams = append(dp.Teams, teamPlan{
				Team:           tdw.Team,
				Stats:          agg.TeamStats(tdw),
				UniqueProducts: agg.UniqueProductCount(tdw),
				OrdersWork:     tdw.OrdersWork,
			})
		}
		plan = append(plan, dp)
	}
	return plan
}

// orderSharesByDate reports false when no work date lists the order
func orderSharesByDate(agg *planview.Aggregator, combined []models.OptimizationCombined, orderID int64) ([]orderShares, bool) {
	out := []orderShares{}
	found := false
	for _, day := range combined {
		for _, order := range day.SessionOrders {
			if order.ID != orderID {
				continue
			}
			found = true
			out = append(out, orderShares{
				WorkDate: day.WorkDate,
				Teams:    agg.TeamsWorkingOnOrder(day, order),
			})
			break
		}
	}
	return out, found
}

// findTeamDayWork picks the team's work on date, or on the first date it
// works when date is empty.
func findTeamDayWork(combined []models.OptimizationCombined, teamID int64, date string) (models.TeamDayWork, bool) {
	for _, day := range combined {
		if date != "" && day.WorkDate != date {
			continue
		}
		for _, tdw := range day.TeamsDayWork {
			if tdw.Team != nil && tdw.Team.ID == teamID {
				return tdw, true
			}
		}
	}
	return models.TeamDayWork{}, false
}

func countTeams(combined []models.OptimizationCombined) int {
	seen := make(map[int64]struct{})
	for _, day := range combined {
		for _, tdw := range day.TeamsDayWork {
			seen[tdw.Team.ID] = struct{}{}
		}
	}
	return len(seen)
}

func int64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return v, true
}
