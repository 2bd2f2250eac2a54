package storage

import (
	"context"
	"errors"
	"time"

	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

var ErrNotFound = errors.New("storage: not found")

// Latest* methods return (nil, nil) when the user has no record dated on or
// before asOf. *InRange methods are inclusive on both calendar days and
// return records oldest first.

type StressRepository interface {
	SaveStress(ctx context.Context, rec *internal.StressRecord) error
	ListStress(ctx context.Context, userID string) ([]internal.StressRecord, error)
	CountStress(ctx context.Context, userID string) (int, error)
	LatestStress(ctx context.Context, userID string, asOf time.Time) (*internal.StressRecord, error)
	StressInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.StressRecord, error)
}

type SleepRepository interface {
	SaveSleep(ctx context.Context, rec *internal.SleepRecord) error
	ListSleep(ctx context.Context, userID string) ([]internal.SleepRecord, error)
	CountSleep(ctx context.Context, userID string) (int, error)
	LatestSleep(ctx context.Context, userID string, asOf time.Time) (*internal.SleepRecord, error)
	SleepInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepRecord, error)
}

type WorkRepository interface {
	SaveWork(ctx context.Context, rec *internal.WorkActivity) error
	ListWork(ctx context.Context, userID string) ([]internal.WorkActivity, error)
	CountWork(ctx context.Context, userID string) (int, error)
	LatestWork(ctx context.Context, userID string, asOf time.Time) (*internal.WorkActivity, error)
	WorkInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.WorkActivity, error)
}

// AssessmentRepository is append-only.
type AssessmentRepository interface {
	SaveAssessment(ctx context.Context, a *internal.BurnoutRiskAssessment) error
	// ListAssessments returns newest first; limit <= 0 means no limit.
	ListAssessments(ctx context.Context, userID string, limit int) ([]internal.BurnoutRiskAssessment, error)
}

type RecommendationRepository interface {
	SaveRecommendation(ctx context.Context, rec *internal.Recommendation) error
	// ListRecommendations returns the catalog in creation order.
	ListRecommendations(ctx context.Context) ([]internal.Recommendation, error)
	SaveUserRecommendation(ctx context.Context, ur *internal.UserRecommendation) error
	UpdateUserRecommendation(ctx context.Context, ur *internal.UserRecommendation) error
	GetUserRecommendation(ctx context.Context, userID, id string) (*internal.UserRecommendation, error)
	// ListUserRecommendations returns newest first.
	ListUserRecommendations(ctx context.Context, userID string) ([]internal.UserRecommendation, error)
	DeleteUserRecommendations(ctx context.Context, userID string) error
}

// Store bundles every repository a backend provides.
type Store interface {
	StressRepository
	SleepRepository
	WorkRepository
	AssessmentRepository
	RecommendationRepository
	Close() error
}
