package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/service"
)

// GetBurnoutRisk computes the risk as of ?date= without storing it.
func GetBurnoutRisk(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		asOf, err := service.ParseAsOf(c.Query("date"), app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		a, err := service.ComputeRisk(c.Request.Context(), app.Store(), currentUser(c).ID, asOf)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute burnout risk")
			return
		}
		HandleSuccess(c, app.Logger(), a, nil)
	}
}

func PostCalculateBurnoutRisk(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		asOf, err := service.ParseAsOf(c.Query("date"), app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid date")
			return
		}
		a, err := service.CalculateAndStoreRisk(c.Request.Context(), app.Store(), currentUser(c).ID, asOf)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to store burnout risk")
			return
		}
		HandleCreated(c, app.Logger(), a)
	}
}

func GetLatestBurnoutRisk(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := service.LatestRisk(c.Request.Context(), app.Store(), currentUser(c).ID)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "No burnout risk assessment")
			return
		}
		HandleSuccess(c, app.Logger(), a, nil)
	}
}

func GetBurnoutRiskHistory(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				HandleError(c, app.Logger(), errInvalidLimit, 400, "Invalid limit")
				return
			}
			limit = n
		}
		list, err := service.RiskHistory(c.Request.Context(), app.Store(), currentUser(c).ID, limit)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch burnout risk history")
			return
		}
		HandleSuccess(c, app.Logger(), list, map[string]any{"count": len(list)})
	}
}

func GetDashboardSummary(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := service.BuildDashboard(c.Request.Context(), app.Store(), currentUser(c).ID, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to build dashboard")
			return
		}
		HandleSuccess(c, app.Logger(), d, nil)
	}
}
