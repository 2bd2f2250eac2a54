package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/auth"
)

// NewRouter wires every route behind request ids, access logging and auth.
func NewRouter(app App, provider auth.Provider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), AccessLogMiddleware(app.Logger()))

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	g := r.Group("/api", auth.AuthMiddleware(provider))
	g.POST("/stress", PostStress(app))
	g.GET("/stress", GetStress(app))
	g.GET("/stress/statistics", GetStressStatistics(app))
	g.POST("/sleep", PostSleep(app))
	g.GET("/sleep", GetSleep(app))
	g.GET("/sleep/statistics", GetSleepStatistics(app))
	g.POST("/work-activity", PostWorkActivity(app))
	g.GET("/work-activity", GetWorkActivity(app))
	g.GET("/work-activity/statistics", GetWorkStatistics(app))

	g.GET("/burnout-risk", GetBurnoutRisk(app))
	g.POST("/burnout-risk/calculate", PostCalculateBurnoutRisk(app))
	g.GET("/burnout-risk/latest", GetLatestBurnoutRisk(app))
	g.GET("/burnout-risk/history", GetBurnoutRiskHistory(app))
	g.GET("/dashboard/summary", GetDashboardSummary(app))

	g.GET("/recommendations", GetRecommendations(app))
	g.GET("/user-recommendations", GetUserRecommendations(app))
	g.POST("/user-recommendations/request-new", PostRequestNewRecommendations(app))
	g.PATCH("/user-recommendations/:id/status", PatchUserRecommendationStatus(app))
	return r
}
