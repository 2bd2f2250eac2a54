package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

type failingSleepStore struct {
	*storage.FileStorage
}

func (failingSleepStore) SleepInRange(context.Context, string, time.Time, time.Time) ([]internal.SleepRecord, error) {
	return nil, errors.New("disk gone")
}

func TestBuildDashboard_EmptyUserComputesRisk(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	today := date(4, 20).Add(13 * time.Hour)

	d, err := BuildDashboard(ctx, s, "u1", today)
	require.NoError(t, err)

	assert.Nil(t, d.Stress.CurrentLevel)
	assert.Equal(t, "2024-03-21", d.Stress.StartDate)
	assert.Equal(t, "2024-04-20", d.Stress.EndDate)
	assert.Len(t, d.Stress.Daily, 31)
	assert.Equal(t, "stable", d.Sleep.WeeklyTrend.Direction)

	require.NotNil(t, d.BurnoutRisk.Current)
	assert.False(t, d.BurnoutRisk.Persisted)
	assert.Nil(t, d.BurnoutRisk.PreviousLevel)
	assert.InDelta(t, 6.0, d.BurnoutRisk.Current.RiskLevel, 1e-9)
	assert.Equal(t, "stable", d.BurnoutRisk.Trend.Direction)

	assessments, err := s.ListAssessments(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, assessments)
}

func TestBuildDashboard_Summaries(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	today := date(4, 20)

	for _, r := range []internal.StressRecord{
		{ID: "ancient", UserID: "u1", Level: 10, CreatedAt: date(4, 20).AddDate(-1, 0, 0)},
		{ID: "old", UserID: "u1", Level: 90, CreatedAt: date(3, 1)},
		{ID: "m", UserID: "u1", Level: 20, CreatedAt: date(4, 1)},
		{ID: "w1", UserID: "u1", Level: 50, CreatedAt: date(4, 15)},
		{ID: "w2", UserID: "u1", Level: 70, CreatedAt: date(4, 19)},
	} {
		require.NoError(t, s.SaveStress(ctx, &r))
	}
	for _, r := range []internal.SleepRecord{
		{ID: "s1", UserID: "u1", Date: date(4, 10), DurationHours: 8, Quality: intPtr(8)},
		{ID: "s2", UserID: "u1", Date: date(4, 18), DurationHours: 6},
	} {
		require.NoError(t, s.SaveSleep(ctx, &r))
	}
	require.NoError(t, s.SaveWork(ctx, &internal.WorkActivity{ID: "wk", UserID: "u1", Date: date(4, 19), DurationHours: 11, Productivity: intPtr(5)}))

	freezeClock(t, date(4, 19))
	_, err := CalculateAndStoreRisk(ctx, s, "u1", date(4, 19))
	require.NoError(t, err)
	freezeClock(t, date(4, 20))
	_, err = CalculateAndStoreRisk(ctx, s, "u1", date(4, 20))
	require.NoError(t, err)

	_, err = SeedRecommendationCatalog(ctx, s)
	require.NoError(t, err)
	_, err = AssignAllRecommendations(ctx, s, "u1")
	require.NoError(t, err)

	d, err := BuildDashboard(ctx, s, "u1", today)
	require.NoError(t, err)

	require.NotNil(t, d.Stress.CurrentLevel)
	assert.Equal(t, 70, *d.Stress.CurrentLevel)
	// totals are all-time while averages cover the last 30 days
	assert.Equal(t, 5, d.Stress.TotalRecords)
	assert.InDelta(t, 140.0/3, d.Stress.Average, 1e-9)
	assert.Equal(t, 20.0, d.Stress.Min)
	assert.Equal(t, 70.0, d.Stress.Max)
	// week [4/13, 4/20] averages 60 against nothing in [4/6, 4/12]
	assert.InDelta(t, 60.0, d.Stress.WeeklyTrend.Value, 1e-9)

	assert.Equal(t, 2, d.Sleep.TotalRecords)
	assert.Equal(t, 7.0, d.Sleep.AverageDuration)
	assert.Equal(t, 8.0, d.Sleep.AverageQuality)
	// week holds 6h, previous week 8h
	assert.Equal(t, -2.0, d.Sleep.WeeklyTrend.Value)
	assert.Equal(t, "down", d.Sleep.WeeklyTrend.Direction)

	assert.Equal(t, 1, d.Work.TotalRecords)
	assert.Equal(t, 11.0, d.Work.AverageDuration)
	assert.Equal(t, 5.0, d.Work.AverageProductivity)

	assert.True(t, d.BurnoutRisk.Persisted)
	require.NotNil(t, d.BurnoutRisk.PreviousLevel)
	assert.Equal(t, *d.BurnoutRisk.PreviousLevel, d.BurnoutRisk.Current.RiskLevel)
	assert.Equal(t, "stable", d.BurnoutRisk.Trend.Direction)

	assert.Equal(t, 8, d.Recommendations.Pending)
	assert.Len(t, d.Recommendations.Latest, 5)
}

func TestBuildDashboard_SingleStoredAssessmentComparesToZero(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	require.NoError(t, s.SaveAssessment(ctx, &internal.BurnoutRiskAssessment{ID: "a", UserID: "u1", RiskLevel: 25, CreatedAt: date(4, 1)}))

	d, err := BuildDashboard(ctx, s, "u1", date(4, 2))
	require.NoError(t, err)
	require.NotNil(t, d.BurnoutRisk.PreviousLevel)
	assert.Zero(t, *d.BurnoutRisk.PreviousLevel)
	assert.Equal(t, 25.0, d.BurnoutRisk.Trend.Value)
	assert.Equal(t, "up", d.BurnoutRisk.Trend.Direction)
}

func TestBuildDashboard_LoadError(t *testing.T) {
	s := failingSleepStore{setupTestStore(t)}
	_, err := BuildDashboard(context.Background(), s, "u1", date(4, 2))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load sleep")
}
