package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/service"
)

var (
	errInvalidLimit = errors.New("limit must be a positive integer")
	errInvalidQuick = errors.New("quick must be true or false")
)

func GetRecommendations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := service.CatalogFilter{Category: c.Query("category")}
		if raw := c.Query("quick"); raw != "" {
			quick, err := strconv.ParseBool(raw)
			if err != nil {
				HandleError(c, app.Logger(), errInvalidQuick, 400, "Invalid filter")
				return
			}
			f.Quick = &quick
		}
		list, err := service.ListRecommendations(c.Request.Context(), app.Store(), f)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch recommendations")
			return
		}
		HandleSuccess(c, app.Logger(), list, map[string]any{"count": len(list)})
	}
}

func GetUserRecommendations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := service.UserRecommendationFilter{Status: c.Query("status"), Category: c.Query("category")}
		list, err := service.ListUserRecommendations(c.Request.Context(), app.Store(), currentUser(c).ID, f)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch user recommendations")
			return
		}
		HandleSuccess(c, app.Logger(), list, map[string]any{"count": len(list)})
	}
}

func PostRequestNewRecommendations(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		created, err := service.RequestNewRecommendations(c.Request.Context(), app.Store(), currentUser(c).ID, app.RecommendationBatch())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to assign recommendations")
			return
		}
		HandleCreated(c, app.Logger(), created)
	}
}

func PatchUserRecommendationStatus(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body service.StatusUpdateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateStatusUpdate(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}
		ur, err := service.UpdateRecommendationStatus(c.Request.Context(), app.Store(), currentUser(c).ID, c.Param("id"), &body)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to update recommendation")
			return
		}
		HandleSuccess(c, app.Logger(), ur, nil)
	}
}
