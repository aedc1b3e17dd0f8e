package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/arnavshah/planning-view-go/pkg/models"
)

// ValidateResults checks a posted result list before it is combined
func (h *Handler) ValidateResults(c *gin.Context) {
	var input []models.OptimizationResult
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one optimization result is required",
		})
		return
	}

	if msg := validateResults(input); msg != "" {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": msg})
		return
	}

	teams := make(map[int64]bool)
	dates := make(map[string]bool)
	for _, r := range input {
		teams[r.Team.ID] = true
		dates[r.WorkDate] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"record_count": len(input),
			"team_count":   len(teams),
			"date_count":   len(dates),
		},
	})
}

// validateResults returns the first problem found, or "" when the list is usable
func validateResults(input []models.OptimizationResult) string {
	ids := make(map[int64]bool)
	for _, r := range input {
		id := strconv.FormatInt(r.ID, 10)
		if ids[r.ID] {
			return "Duplicate result ID: " + id
		}
		ids[r.ID] = true

		if r.Team == nil {
			return "Result " + id + " has no team"
		}
		if r.Product == nil {
			return "Result " + id + " has no product"
		}
		if _, err := time.Parse("2006-01-02", r.WorkDate); err != nil {
			return fmt.Sprintf("Result %s has an invalid workDate %q", id, r.WorkDate)
		}
		if r.PlannedHours < 0 || r.PlannedQuantity < 0 {
			return "Result " + id + " has negative planned amounts"
		}
	}
	return ""
}
