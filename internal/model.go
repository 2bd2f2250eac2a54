package internal

import "time"

type User struct {
	ID    string `json:"id"`
	Token string `json:"token,omitempty"`
	Name  string `json:"name"`
}

type StressRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Level     int       `json:"level"` // 0-100 scale
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SleepRecord struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Date          time.Time `json:"date"`
	DurationHours float64   `json:"duration_hours"`
	Quality       *int      `json:"quality"` // 1-10 scale
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type WorkActivity struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Date               time.Time `json:"date"`
	DurationHours      float64   `json:"duration_hours"`
	BreaksCount        int       `json:"breaks_count"`
	BreaksTotalMinutes int       `json:"breaks_total_minutes"`
	Productivity       *int      `json:"productivity"` // 1-10 scale
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// RiskFactor is one weighted input of a burnout risk assessment.
type RiskFactor struct {
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}

type RiskRecommendation struct {
	Type        string `json:"type"` // work, stress, sleep
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BurnoutRiskAssessment is immutable once created. Date is the as-of date
// the inputs were selected for.
type BurnoutRiskAssessment struct {
	ID              string                `json:"id,omitempty"`
	UserID          string                `json:"user_id,omitempty"`
	Date            time.Time             `json:"date"`
	RiskLevel       float64               `json:"risk_level"` // 0-100
	RawScore        float64               `json:"raw_score"`
	Factors         map[string]RiskFactor `json:"factors"`
	Recommendations []RiskRecommendation  `json:"recommendations"`
	CreatedAt       time.Time             `json:"created_at"`
}

const (
	CategoryRest        = "rest"
	CategorySleep       = "sleep"
	CategoryExercise    = "exercise"
	CategoryMindfulness = "mindfulness"
	CategorySocial      = "social"
	CategoryWorkBalance = "work_balance"
)

// Recommendation is a catalog template that can be assigned to users.
type Recommendation struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	Category        string    `json:"category"`
	IsQuick         bool      `json:"is_quick"`
	CreatedAt       time.Time `json:"created_at"`
}

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

type UserRecommendation struct {
	ID             string         `json:"id"`
	UserID         string         `json:"user_id"`
	Recommendation Recommendation `json:"recommendation"`
	Status         string         `json:"status"`
	Reason         string         `json:"reason,omitempty"`
	UserFeedback   string         `json:"user_feedback,omitempty"`
	UserRating     *int           `json:"user_rating"` // 1-5 scale
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Day returns midnight of t's UTC calendar date. Every store buckets
// timestamps into days this way, whatever zone they were written in.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"
