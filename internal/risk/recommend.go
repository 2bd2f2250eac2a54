package risk

import "github.com/xCAELESTISOx/pacificapp--backend/internal"

var (
	reduceWorkHours = internal.RiskRecommendation{
		Type:        "work",
		Title:       "Reduce working hours",
		Description: "Try to keep your workday to 8 hours and delegate tasks where you can.",
	}
	relaxation = internal.RiskRecommendation{
		Type:        "stress",
		Title:       "Practice relaxation techniques",
		Description: "Relaxation and meditation exercises help bring your stress level down.",
	}
	sleepEnvironment = internal.RiskRecommendation{
		Type:        "sleep",
		Title:       "Improve your sleep environment",
		Description: "A quiet room, a comfortable bed and no bright light make for better sleep.",
	}
	sleepLonger = internal.RiskRecommendation{
		Type:        "sleep",
		Title:       "Sleep longer",
		Description: "Aim for at least 7-8 hours of sleep a night to recover properly.",
	}
)

// Recommend applies the threshold rules to factor values. Rules are
// independent and evaluated in a fixed order; each emits at most once.
func Recommend(factors map[string]float64) []internal.RiskRecommendation {
	recs := []internal.RiskRecommendation{}
	if factors[FactorOvertime] > 2 || factors[FactorWorkdayDuration] > 2 {
		recs = append(recs, reduceWorkHours)
	}
	if factors[FactorStress] > 5 {
		recs = append(recs, relaxation)
	}
	if factors[FactorSleepQuality] > 5 {
		recs = append(recs, sleepEnvironment)
	}
	if factors[FactorSleepDeprivation] > 3 {
		recs = append(recs, sleepLonger)
	}
	return recs
}
