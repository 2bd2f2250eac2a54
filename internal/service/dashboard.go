package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/trend"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardLoadDays  = 60
	dashboardMonthDays = 30
	dashboardWeekDays  = 7
)

// DashboardSource is every repository the dashboard reads from.
type DashboardSource interface {
	storage.StressRepository
	storage.SleepRepository
	storage.WorkRepository
	storage.AssessmentRepository
	storage.RecommendationRepository
}

type Dashboard struct {
	Sleep           SleepSummary         `json:"sleep"`
	Stress          StressSummary        `json:"stress"`
	Work            WorkSummary          `json:"work"`
	BurnoutRisk     RiskSummary          `json:"burnout_risk"`
	Recommendations RecommendationCounts `json:"recommendations"`
}

type SleepSummary struct {
	AverageDuration float64     `json:"average_duration"`
	AverageQuality  float64     `json:"average_quality"`
	TotalRecords    int         `json:"total_records"`
	WeeklyTrend     trend.Trend `json:"weekly_trend"`
}

type StressSummary struct {
	CurrentLevel *int        `json:"current_level"`
	Average      float64     `json:"average"`
	Min          float64     `json:"min"`
	Max          float64     `json:"max"`
	TotalRecords int         `json:"total_records"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Daily        []trend.Day `json:"daily"`
	WeeklyTrend  trend.Trend `json:"weekly_trend"`
}

type WorkSummary struct {
	AverageDuration     float64     `json:"average_duration"`
	AverageProductivity float64     `json:"average_productivity"`
	TotalRecords        int         `json:"total_records"`
	WeeklyTrend         trend.Trend `json:"weekly_trend"`
}

// RiskSummary compares the newest stored assessment with the one before it.
// When nothing is stored Current is computed on the fly, Persisted is false
// and PreviousLevel is nil.
type RiskSummary struct {
	Current       *internal.BurnoutRiskAssessment `json:"current"`
	PreviousLevel *float64                        `json:"previous_level,omitempty"`
	Trend         trend.Trend                     `json:"trend"`
	Persisted     bool                            `json:"persisted"`
}

// BuildDashboard loads the last 60 days of records concurrently and
// summarizes them as of today.
func BuildDashboard(ctx context.Context, src DashboardSource, userID string, today time.Time) (*Dashboard, error) {
	today = internal.Day(today)
	from := today.AddDate(0, 0, -dashboardLoadDays)

	var (
		stress      []internal.StressRecord
		sleep       []internal.SleepRecord
		work        []internal.WorkActivity
		assessments []internal.BurnoutRiskAssessment
		userRecs    []internal.UserRecommendation
		counts      recordCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stress, err = src.StressInRange(gctx, userID, from, today)
		return wrap("stress", err)
	})
	g.Go(func() (err error) {
		sleep, err = src.SleepInRange(gctx, userID, from, today)
		return wrap("sleep", err)
	})
	g.Go(func() (err error) {
		work, err = src.WorkInRange(gctx, userID, from, today)
		return wrap("work", err)
	})
	g.Go(func() (err error) {
		counts.stress, err = src.CountStress(gctx, userID)
		return wrap("stress count", err)
	})
	g.Go(func() (err error) {
		counts.sleep, err = src.CountSleep(gctx, userID)
		return wrap("sleep count", err)
	})
	g.Go(func() (err error) {
		counts.work, err = src.CountWork(gctx, userID)
		return wrap("work count", err)
	})
	g.Go(func() (err error) {
		assessments, err = src.ListAssessments(gctx, userID, 2)
		return wrap("assessments", err)
	})
	g.Go(func() (err error) {
		userRecs, err = src.ListUserRecommendations(gctx, userID)
		return wrap("recommendations", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	monthStart := today.AddDate(0, 0, -dashboardMonthDays)
	weekStart := today.AddDate(0, 0, -dashboardWeekDays)

	d := &Dashboard{
		Sleep:           sleepSummary(sleep, monthStart, weekStart, today),
		Stress:          stressSummary(stress, monthStart, weekStart, today),
		Work:            workSummary(work, monthStart, weekStart, today),
		Recommendations: CountRecommendations(userRecs),
	}
	d.Sleep.TotalRecords = counts.sleep
	d.Stress.TotalRecords = counts.stress
	d.Work.TotalRecords = counts.work

	rs, err := riskSummary(ctx, src, userID, today, assessments)
	if err != nil {
		return nil, err
	}
	d.BurnoutRisk = rs
	return d, nil
}

// recordCounts are all-time totals, not limited to the summary window.
type recordCounts struct {
	stress, sleep, work int
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}

func sleepSummary(recs []internal.SleepRecord, monthStart, weekStart, today time.Time) SleepSummary {
	var quality []trend.Point
	for _, r := range recs {
		if r.Quality != nil {
			quality = append(quality, trend.Point{Date: r.Date, Value: float64(*r.Quality)})
		}
	}
	points := sleepPoints(recs)
	month := trend.Aggregate(points, monthStart, today)
	return SleepSummary{
		AverageDuration: month.Average,
		AverageQuality:  trend.Aggregate(quality, monthStart, today).Average,
		WeeklyTrend:     trend.Aggregate(points, weekStart, today).Trend,
	}
}

func stressSummary(recs []internal.StressRecord, monthStart, weekStart, today time.Time) StressSummary {
	points := stressPoints(recs)
	month := trend.Aggregate(points, monthStart, today)
	s := StressSummary{
		Average:     month.Average,
		Min:         month.Min,
		Max:         month.Max,
		StartDate:   monthStart.Format(internal.DateFormat),
		EndDate:     today.Format(internal.DateFormat),
		Daily:       trend.Daily(points, monthStart, today),
		WeeklyTrend: trend.Aggregate(points, weekStart, today).Trend,
	}
	if len(recs) > 0 {
		lvl := recs[len(recs)-1].Level
		s.CurrentLevel = &lvl
	}
	return s
}

func workSummary(recs []internal.WorkActivity, monthStart, weekStart, today time.Time) WorkSummary {
	var productivity []trend.Point
	for _, r := range recs {
		if r.Productivity != nil {
			productivity = append(productivity, trend.Point{Date: r.Date, Value: float64(*r.Productivity)})
		}
	}
	points := workPoints(recs)
	month := trend.Aggregate(points, monthStart, today)
	return WorkSummary{
		AverageDuration:     month.Average,
		AverageProductivity: trend.Aggregate(productivity, monthStart, today).Average,
		WeeklyTrend:         trend.Aggregate(points, weekStart, today).Trend,
	}
}

func riskSummary(ctx context.Context, src LatestReader, userID string, today time.Time, stored []internal.BurnoutRiskAssessment) (RiskSummary, error) {
	if len(stored) == 0 {
		a, err := ComputeRisk(ctx, src, userID, today)
		if err != nil {
			return RiskSummary{}, err
		}
		return RiskSummary{Current: a, Trend: trend.Trend{Direction: trend.Stable}}, nil
	}

	current := stored[0]
	prev := 0.0
	if len(stored) > 1 {
		prev = stored[1].RiskLevel
	}
	delta := current.RiskLevel - prev
	return RiskSummary{
		Current:       &current,
		PreviousLevel: &prev,
		Trend:         trend.Trend{Value: delta, Direction: trend.DirectionOf(delta)},
		Persisted:     true,
	}, nil
}
