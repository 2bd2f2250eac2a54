package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

// MaxPeriodDays caps the span of a requested period. Daily series grow with
// the number of days, not the number of records.
const MaxPeriodDays = 366

var (
	ErrInvalidDate  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidRange = errors.New("invalid date range")
)

// Period is an inclusive range of calendar days.
type Period struct {
	Start time.Time
	End   time.Time
}

// Span is the number of days between Start and End.
func (p Period) Span() int {
	return int((p.End.Unix() - p.Start.Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// WithPrevious extends the period backwards by its span so one range read
// covers both the period and the one it is compared against.
func (p Period) WithPrevious() Period {
	return Period{Start: p.Start.AddDate(0, 0, -p.Span()), End: p.End}
}

// ParsePeriod reads optional YYYY-MM-DD bounds. A missing end defaults to
// today and a missing start to defaultDays before the end.
func ParsePeriod(startStr, endStr string, defaultDays int, today time.Time) (Period, error) {
	end := internal.Day(today)
	if endStr != "" {
		d, err := parseDate(endStr)
		if err != nil {
			return Period{}, err
		}
		end = d
	}
	start := end.AddDate(0, 0, -defaultDays)
	if startStr != "" {
		d, err := parseDate(startStr)
		if err != nil {
			return Period{}, err
		}
		start = d
	}
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end_date must not be before start_date", ErrInvalidRange)
	}
	p := Period{Start: start, End: end}
	if p.Span() > MaxPeriodDays {
		return Period{}, fmt.Errorf("%w: period longer than %d days", ErrInvalidRange, MaxPeriodDays)
	}
	return p, nil
}

// ParseAsOf reads an optional YYYY-MM-DD as-of date, defaulting to today.
func ParseAsOf(dateStr string, today time.Time) (time.Time, error) {
	if dateStr == "" {
		return internal.Day(today), nil
	}
	return parseDate(dateStr)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(internal.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}
