// Package risk computes burnout risk assessments from a user's most recent
// wellbeing records. Everything here is pure: no I/O, no clock reads.
package risk

import (
	"time"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

// Factor names as they appear in an assessment.
const (
	FactorOvertime         = "overtime"
	FactorWorkdayDuration  = "workday_duration"
	FactorStress           = "stress"
	FactorSleepQuality     = "sleep_quality"
	FactorSleepDeprivation = "sleep_deprivation"
)

// Weights sum to 0.85. They are applied as-is, without renormalization.
var Weights = map[string]float64{
	FactorOvertime:         0.15,
	FactorWorkdayDuration:  0.10,
	FactorStress:           0.20,
	FactorSleepQuality:     0.20,
	FactorSleepDeprivation: 0.20,
}

// factorOrder fixes the summation order so results are bit-for-bit stable.
var factorOrder = []string{
	FactorOvertime,
	FactorWorkdayDuration,
	FactorStress,
	FactorSleepQuality,
	FactorSleepDeprivation,
}

// Fallbacks used when a user has no record of a kind.
const (
	DefaultWorkHours    = 8.0
	DefaultStressLevel  = 0
	DefaultSleepHours   = 8.0
	DefaultSleepQuality = 7
)

// Snapshot holds the latest record of each kind as of some date. Nil means
// the user has no such record.
type Snapshot struct {
	Work   *internal.WorkActivity
	Stress *internal.StressRecord
	Sleep  *internal.SleepRecord
}

// Inputs are the raw signals the formula runs on after fallbacks.
type Inputs struct {
	WorkHours    float64
	StressLevel  float64
	SleepHours   float64
	SleepQuality float64
}

// Resolve applies the fallback defaults. Records dated after asOf are
// treated as absent.
func Resolve(s Snapshot, asOf time.Time) Inputs {
	day := internal.Day(asOf)
	in := Inputs{
		WorkHours:    DefaultWorkHours,
		StressLevel:  DefaultStressLevel,
		SleepHours:   DefaultSleepHours,
		SleepQuality: DefaultSleepQuality,
	}
	if s.Work != nil && !internal.Day(s.Work.Date).After(day) {
		in.WorkHours = s.Work.DurationHours
	}
	if s.Stress != nil && !internal.Day(s.Stress.CreatedAt).After(day) {
		in.StressLevel = float64(s.Stress.Level)
	}
	if s.Sleep != nil && !internal.Day(s.Sleep.Date).After(day) {
		in.SleepHours = s.Sleep.DurationHours
		if s.Sleep.Quality != nil {
			in.SleepQuality = float64(*s.Sleep.Quality)
		}
	}
	return in
}

// Factors derives the five factor values from the inputs.
func Factors(in Inputs) map[string]float64 {
	return map[string]float64{
		FactorOvertime:         max(0, in.WorkHours-8),
		FactorWorkdayDuration:  max(0, (in.WorkHours-8)*0.4),
		FactorStress:           in.StressLevel / 10,
		FactorSleepQuality:     10 - in.SleepQuality,
		FactorSleepDeprivation: min((8-in.SleepHours)*0.4, 10),
	}
}

// Compute maps a snapshot to an assessment dated asOf. ID, UserID and
// CreatedAt are left for the caller to fill when persisting.
func Compute(s Snapshot, asOf time.Time) internal.BurnoutRiskAssessment {
	values := Factors(Resolve(s, asOf))

	factors := make(map[string]internal.RiskFactor, len(factorOrder))
	raw := 0.0
	for _, name := range factorOrder {
		w := Weights[name]
		factors[name] = internal.RiskFactor{Value: values[name], Weight: w}
		raw += values[name] * w
	}

	return internal.BurnoutRiskAssessment{
		Date:            internal.Day(asOf),
		RiskLevel:       Level(raw),
		RawScore:        raw,
		Factors:         factors,
		Recommendations: Recommend(values),
	}
}

// Level scales a 0-10 weighted sum to the 0-100 display range.
func Level(raw float64) float64 {
	return min(max(raw*10, 0), 100)
}
