package api

import (
	"github.com/gin-gonic/gin"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/service"
)

func PostStress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.StressRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateStressRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.CreateStressRecord(c.Request.Context(), app.Store(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save stress record")
			return
		}
		HandleCreated(c, app.Logger(), rec)
	}
}

func GetStress(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := app.Store().ListStress(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch stress records")
			return
		}
		HandleSuccess(c, app.Logger(), recs, map[string]any{"count": len(recs)})
	}
}

func GetStressStatistics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := service.ParsePeriod(c.Query("start_date"), c.Query("end_date"), service.DefaultStressDays, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid period")
			return
		}
		stats, err := service.GetStressStatistics(c.Request.Context(), app.Store(), currentUser(c).ID, p)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute stress statistics")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}

func PostSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.SleepRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateSleepRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.CreateSleepRecord(c.Request.Context(), app.Store(), user, &body)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to save sleep record")
			return
		}
		HandleCreated(c, app.Logger(), rec)
	}
}

func GetSleep(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := app.Store().ListSleep(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch sleep records")
			return
		}
		HandleSuccess(c, app.Logger(), recs, map[string]any{"count": len(recs)})
	}
}

func GetSleepStatistics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := service.ParsePeriod(c.Query("start_date"), c.Query("end_date"), service.DefaultSleepDays, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid period")
			return
		}
		stats, err := service.GetSleepStatistics(c.Request.Context(), app.Store(), currentUser(c).ID, p)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute sleep statistics")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}

func PostWorkActivity(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)

		var body service.WorkRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateWorkRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		rec, err := service.CreateWorkActivity(c.Request.Context(), app.Store(), user, &body)
		if err != nil {
			HandleServiceError(c, app.Logger(), err, "Failed to save work activity")
			return
		}
		HandleCreated(c, app.Logger(), rec)
	}
}

func GetWorkActivity(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		recs, err := app.Store().ListWork(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch work activities")
			return
		}
		HandleSuccess(c, app.Logger(), recs, map[string]any{"count": len(recs)})
	}
}

func GetWorkStatistics(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := service.ParsePeriod(c.Query("start_date"), c.Query("end_date"), service.DefaultWorkDays, app.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid period")
			return
		}
		stats, err := service.GetWorkStatistics(c.Request.Context(), app.Store(), currentUser(c).ID, p)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to compute work statistics")
			return
		}
		HandleSuccess(c, app.Logger(), stats, nil)
	}
}
