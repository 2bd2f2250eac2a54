// Package trend aggregates dated numeric observations into period averages,
// period-over-period deltas and dense per-day series.
package trend

import (
	"time"

	"github.com/montanaflynn/stats"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

const (
	Up     = "up"
	Down   = "down"
	Stable = "stable"
)

// Point is one observation of a numeric field on a date.
type Point struct {
	Date  time.Time
	Value float64
}

type Trend struct {
	Value     float64 `json:"value"`
	Direction string  `json:"direction"`
}

// Result summarizes [start, end] against the preceding period.
type Result struct {
	Average         float64 `json:"average"`
	PreviousAverage float64 `json:"previous_average"`
	Count           int     `json:"count"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	Trend           Trend   `json:"trend"`
}

// Day is one entry of a dense daily series.
type Day struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

func DirectionOf(v float64) string {
	switch {
	case v > 0:
		return Up
	case v < 0:
		return Down
	default:
		return Stable
	}
}

// Aggregate averages points dated in [start, end] and compares them with
// points in [start-span, start-1d], where span = end-start in days. Empty
// partitions average to 0.
func Aggregate(points []Point, start, end time.Time) Result {
	start, end = internal.Day(start), internal.Day(end)
	span := daysBetween(start, end)
	prevStart := start.AddDate(0, 0, -span)
	prevEnd := start.AddDate(0, 0, -1)

	var cur, prev stats.Float64Data
	for _, p := range points {
		d := internal.Day(p.Date)
		switch {
		case within(d, start, end):
			cur = append(cur, p.Value)
		case within(d, prevStart, prevEnd):
			prev = append(prev, p.Value)
		}
	}

	r := Result{
		Average:         mean(cur),
		PreviousAverage: mean(prev),
		Count:           len(cur),
	}
	if len(cur) > 0 {
		r.Min, _ = stats.Min(cur)
		r.Max, _ = stats.Max(cur)
	}
	delta := r.Average - r.PreviousAverage
	r.Trend = Trend{Value: delta, Direction: DirectionOf(delta)}
	return r
}

// Daily returns one entry per calendar day in [start, end], oldest first,
// including days without observations.
func Daily(points []Point, start, end time.Time) []Day {
	start, end = internal.Day(start), internal.Day(end)
	if end.Before(start) {
		return []Day{}
	}

	buckets := make(map[time.Time]stats.Float64Data)
	for _, p := range points {
		d := internal.Day(p.Date)
		if within(d, start, end) {
			buckets[d] = append(buckets[d], p.Value)
		}
	}

	days := make([]Day, 0, daysBetween(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		vals := buckets[d]
		days = append(days, Day{
			Date:    d.Format(internal.DateFormat),
			Average: mean(vals),
			Count:   len(vals),
		})
	}
	return days
}

func mean(data stats.Float64Data) float64 {
	if len(data) == 0 {
		return 0
	}
	m, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return m
}

func within(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// daysBetween counts calendar days; both arguments are UTC midnights.
func daysBetween(start, end time.Time) int {
	return int((end.Unix() - start.Unix()) / (24 * 60 * 60))
}
