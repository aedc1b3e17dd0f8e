package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Version is reported by the service banner
const Version = "1.0.0"

// RegisterRoutes mounts every route of the service on r
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Planning View API",
			"version": Version,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Planning Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/teams", h.ListTeams)
		api.GET("/teams/:id/employees", h.TeamEmployees)
		api.GET("/employees", h.ListEmployees)
		api.GET("/products", h.ListProducts)
		api.GET("/team-productivity", h.ListTeamProductivity)
		api.GET("/sessions", h.ListSessions)
		api.GET("/sessions/:id/orders", h.SessionOrders)
		api.GET("/sessions/:id/runs", h.SessionRuns)
		api.GET("/sessions/:id/plan", h.SessionPlan)
		api.GET("/sessions/:id/orders/:orderId/teams", h.OrderTeams)
		api.POST("/plan/combine", h.CombineResults)
		api.GET("/absences/teams", h.AbsenceTeams)
		api.POST("/optimize/:runId", h.Optimize)
		api.POST("/validate", h.ValidateResults)
		api.GET("/usage", h.GetMyUsage)
	}
}
