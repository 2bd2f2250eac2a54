package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/risk"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

const DefaultHistoryLimit = 30

// LatestReader is what a risk computation reads.
type LatestReader interface {
	LatestStress(ctx context.Context, userID string, asOf time.Time) (*internal.StressRecord, error)
	LatestSleep(ctx context.Context, userID string, asOf time.Time) (*internal.SleepRecord, error)
	LatestWork(ctx context.Context, userID string, asOf time.Time) (*internal.WorkActivity, error)
}

// RiskStore reads inputs and appends assessments.
type RiskStore interface {
	LatestReader
	storage.AssessmentRepository
}

func loadSnapshot(ctx context.Context, src LatestReader, userID string, asOf time.Time) (risk.Snapshot, error) {
	var s risk.Snapshot
	var err error
	if s.Work, err = src.LatestWork(ctx, userID, asOf); err != nil {
		return s, err
	}
	if s.Stress, err = src.LatestStress(ctx, userID, asOf); err != nil {
		return s, err
	}
	if s.Sleep, err = src.LatestSleep(ctx, userID, asOf); err != nil {
		return s, err
	}
	return s, nil
}

// ComputeRisk evaluates the user's risk as of a date without storing it.
func ComputeRisk(ctx context.Context, src LatestReader, userID string, asOf time.Time) (*internal.BurnoutRiskAssessment, error) {
	snap, err := loadSnapshot(ctx, src, userID, asOf)
	if err != nil {
		return nil, err
	}
	a := risk.Compute(snap, asOf)
	a.UserID = userID
	return &a, nil
}

// CalculateAndStoreRisk computes an assessment for today and appends it to
// the user's history.
func CalculateAndStoreRisk(ctx context.Context, repo RiskStore, userID string, asOf time.Time) (*internal.BurnoutRiskAssessment, error) {
	a, err := ComputeRisk(ctx, repo, userID, asOf)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.NewString()
	a.CreatedAt = now()
	if err := repo.SaveAssessment(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// LatestRisk returns the most recently stored assessment.
func LatestRisk(ctx context.Context, repo storage.AssessmentRepository, userID string) (*internal.BurnoutRiskAssessment, error) {
	list, err := repo.ListAssessments(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, storage.ErrNotFound
	}
	return &list[0], nil
}

// RiskHistory returns stored assessments newest first.
func RiskHistory(ctx context.Context, repo storage.AssessmentRepository, userID string, limit int) ([]internal.BurnoutRiskAssessment, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	list, err := repo.ListAssessments(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []internal.BurnoutRiskAssessment{}
	}
	return list, nil
}
