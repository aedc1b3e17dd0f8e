package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/arnavshah/planning-view-go/pkg/planview"
	"github.com/arnavshah/planning-view-go/pkg/query"
)

// ListTeams returns the team list filtered and sorted by the query string
func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.Planning.ListTeams(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(teams), len(teams))
	listView(c, planview.TeamFields, teams, h.Language)
}

// ListEmployees returns the employee list filtered and sorted by the query string
func (h *Handler) ListEmployees(c *gin.Context) {
	employees, err := h.Planning.ListEmployees(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(employees), 0)
	listView(c, planview.EmployeeFields, employees, h.Language)
}

// ListProducts returns the product list filtered and sorted by the query string
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.Planning.ListProducts(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(products), 0)
	listView(c, planview.ProductFields, products, h.Language)
}

// listView runs items through a query engine. Every "filter=field:value"
// adds one allowed value and every "sort=field" is one sort toggle, so
// repeating a sort field walks the ascending, descending, default cycle.
func listView[T query.Record](c *gin.Context, fields query.Fields[T], items []T, lang language.Tag) {
	filters, err := query.ParseFilters(c.QueryArray("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engine := query.New(fields, query.WithLanguage(lang))
	engine.Initialize(items, filters)
	for _, field := range c.QueryArray("sort") {
		engine.ToggleSort(field)
	}

	view := engine.Items()
	c.JSON(http.StatusOK, gin.H{
		"items":   view,
		"count":   len(view),
		"total":   len(items),
		"sort":    engine.SortState(),
		"filters": engine.FilterState(),
	})
}

// TeamEmployees returns the employees of one team as a list view
func (h *Handler) TeamEmployees(c *gin.Context) {
	teamID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	employees, err := h.Planning.ListEmployeesByTeam(c.Request.Context(), teamID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(employees), 1)
	listView(c, planview.EmployeeFields, employees, h.Language)
}

// ListSessions returns the production sessions as a list view
func (h *Handler) ListSessions(c *gin.Context) {
	sessions, err := h.Planning.ListSessions(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(sessions), 0)
	listView(c, planview.SessionFields, sessions, h.Language)
}

// SessionOrders returns the orders of one production session as a list view
func (h *Handler) SessionOrders(c *gin.Context) {
	sessionID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	session, err := h.Planning.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(session.SessionOrders), 0)
	listView(c, planview.SessionOrderFields, session.SessionOrders, h.Language)
}

// SessionRuns returns the optimization runs of one production session
func (h *Handler) SessionRuns(c *gin.Context) {
	sessionID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	runs, err := h.Planning.RunsForSession(c.Request.Context(), sessionID)
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(runs), 0)
	listView(c, planview.RunFields, runs, h.Language)
}

// ListTeamProductivity returns the team productivity rates as a list view
func (h *Handler) ListTeamProductivity(c *gin.Context) {
	rates, err := h.Planning.ListTeamProductivity(c.Request.Context())
	if err != nil {
		h.upstreamError(c, err)
		return
	}
	h.RecordUsage(c, len(rates), 0)
	listView(c, planview.ProductivityFields, rates, h.Language)
}
