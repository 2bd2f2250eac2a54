package service

import (
	"context"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/trend"
)

// Default statistics windows, in days before the end date.
const (
	DefaultStressDays = 7
	DefaultSleepDays  = 30
	DefaultWorkDays   = 30
)

type StressStatistics struct {
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	AvgLevel     float64     `json:"avg_level"`
	MinLevel     float64     `json:"min_level"`
	MaxLevel     float64     `json:"max_level"`
	TotalRecords int         `json:"total_records"`
	Trend        trend.Trend `json:"trend"`
	Daily        []trend.Day `json:"daily"`
}

type SleepStatistics struct {
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	AvgDuration  float64     `json:"avg_duration"`
	AvgQuality   float64     `json:"avg_quality"`
	TotalRecords int         `json:"total_records"`
	Trend        trend.Trend `json:"trend"`
	Daily        []trend.Day `json:"daily"`
}

type WorkStatistics struct {
	StartDate         string      `json:"start_date"`
	EndDate           string      `json:"end_date"`
	AvgDuration       float64     `json:"avg_duration"`
	AvgBreaks         float64     `json:"avg_breaks"`
	AvgBreaksDuration float64     `json:"avg_breaks_duration"`
	AvgProductivity   float64     `json:"avg_productivity"`
	TotalRecords      int         `json:"total_records"`
	Trend             trend.Trend `json:"trend"`
	Daily             []trend.Day `json:"daily"`
}

func GetStressStatistics(ctx context.Context, repo storage.StressRepository, userID string, p Period) (*StressStatistics, error) {
	w := p.WithPrevious()
	recs, err := repo.StressInRange(ctx, userID, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	return summarizeStress(recs, p), nil
}

func GetSleepStatistics(ctx context.Context, repo storage.SleepRepository, userID string, p Period) (*SleepStatistics, error) {
	w := p.WithPrevious()
	recs, err := repo.SleepInRange(ctx, userID, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	return summarizeSleep(recs, p), nil
}

func GetWorkStatistics(ctx context.Context, repo storage.WorkRepository, userID string, p Period) (*WorkStatistics, error) {
	w := p.WithPrevious()
	recs, err := repo.WorkInRange(ctx, userID, w.Start, w.End)
	if err != nil {
		return nil, err
	}
	return summarizeWork(recs, p), nil
}

func summarizeStress(recs []internal.StressRecord, p Period) *StressStatistics {
	points := stressPoints(recs)
	agg := trend.Aggregate(points, p.Start, p.End)
	return &StressStatistics{
		StartDate:    p.Start.Format(internal.DateFormat),
		EndDate:      p.End.Format(internal.DateFormat),
		AvgLevel:     agg.Average,
		MinLevel:     agg.Min,
		MaxLevel:     agg.Max,
		TotalRecords: agg.Count,
		Trend:        agg.Trend,
		Daily:        trend.Daily(points, p.Start, p.End),
	}
}

func summarizeSleep(recs []internal.SleepRecord, p Period) *SleepStatistics {
	duration := make([]trend.Point, 0, len(recs))
	var quality []trend.Point
	for _, r := range recs {
		duration = append(duration, trend.Point{Date: r.Date, Value: r.DurationHours})
		if r.Quality != nil {
			quality = append(quality, trend.Point{Date: r.Date, Value: float64(*r.Quality)})
		}
	}
	agg := trend.Aggregate(duration, p.Start, p.End)
	return &SleepStatistics{
		StartDate:    p.Start.Format(internal.DateFormat),
		EndDate:      p.End.Format(internal.DateFormat),
		AvgDuration:  agg.Average,
		AvgQuality:   trend.Aggregate(quality, p.Start, p.End).Average,
		TotalRecords: agg.Count,
		Trend:        agg.Trend,
		Daily:        trend.Daily(duration, p.Start, p.End),
	}
}

func summarizeWork(recs []internal.WorkActivity, p Period) *WorkStatistics {
	var duration, breaks, breakMinutes, productivity []trend.Point
	for _, r := range recs {
		duration = append(duration, trend.Point{Date: r.Date, Value: r.DurationHours})
		breaks = append(breaks, trend.Point{Date: r.Date, Value: float64(r.BreaksCount)})
		breakMinutes = append(breakMinutes, trend.Point{Date: r.Date, Value: float64(r.BreaksTotalMinutes)})
		if r.Productivity != nil {
			productivity = append(productivity, trend.Point{Date: r.Date, Value: float64(*r.Productivity)})
		}
	}
	agg := trend.Aggregate(duration, p.Start, p.End)
	return &WorkStatistics{
		StartDate:         p.Start.Format(internal.DateFormat),
		EndDate:           p.End.Format(internal.DateFormat),
		AvgDuration:       agg.Average,
		AvgBreaks:         trend.Aggregate(breaks, p.Start, p.End).Average,
		AvgBreaksDuration: trend.Aggregate(breakMinutes, p.Start, p.End).Average,
		AvgProductivity:   trend.Aggregate(productivity, p.Start, p.End).Average,
		TotalRecords:      agg.Count,
		Trend:             agg.Trend,
		Daily:             trend.Daily(duration, p.Start, p.End),
	}
}

func stressPoints(recs []internal.StressRecord) []trend.Point {
	points := make([]trend.Point, 0, len(recs))
	for _, r := range recs {
		points = append(points, trend.Point{Date: r.CreatedAt, Value: float64(r.Level)})
	}
	return points
}

func sleepPoints(recs []internal.SleepRecord) []trend.Point {
	points := make([]trend.Point, 0, len(recs))
	for _, r := range recs {
		points = append(points, trend.Point{Date: r.Date, Value: r.DurationHours})
	}
	return points
}

func workPoints(recs []internal.WorkActivity) []trend.Point {
	points := make([]trend.Point, 0, len(recs))
	for _, r := range recs {
		points = append(points, trend.Point{Date: r.Date, Value: r.DurationHours})
	}
	return points
}
