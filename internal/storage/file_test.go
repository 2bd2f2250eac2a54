package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

func setupTestStorage(t *testing.T, dir string) *FileStorage {
	t.Helper()
	s, err := NewFileStorage(dir, internal.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func day(d int) time.Time {
	return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestStress_LatestAndRange(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t, t.TempDir())

	recs := []*internal.StressRecord{
		{ID: "s3", UserID: "u1", Level: 30, CreatedAt: day(3).Add(18 * time.Hour)},
		{ID: "s1", UserID: "u1", Level: 10, CreatedAt: day(1).Add(9 * time.Hour)},
		{ID: "s2", UserID: "u1", Level: 20, CreatedAt: day(3).Add(8 * time.Hour)},
		{ID: "x", UserID: "u2", Level: 99, CreatedAt: day(2)},
	}
	for _, r := range recs {
		require.NoError(t, s.SaveStress(ctx, r))
	}

	latest, err := s.LatestStress(ctx, "u1", day(3))
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "s3", latest.ID)

	latest, err = s.LatestStress(ctx, "u1", day(2))
	require.NoError(t, err)
	assert.Equal(t, "s1", latest.ID)

	none, err := s.LatestStress(ctx, "u1", day(0))
	require.NoError(t, err)
	assert.Nil(t, none)

	inRange, err := s.StressInRange(ctx, "u1", day(2), day(3))
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, "s2", inRange[0].ID)
	assert.Equal(t, "s3", inRange[1].ID)

	all, err := s.ListStress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s3", "s2", "s1"}, []string{all[0].ID, all[1].ID, all[2].ID})

	n, err := s.CountStress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = s.CountStress(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStress_DaysAreUTC(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t, t.TempDir())
	est := time.FixedZone("", -5*3600)
	// 23:30 on May 2 at -05:00 is 04:30 on May 3 UTC.
	rec := &internal.StressRecord{ID: "late", UserID: "u1", Level: 40, CreatedAt: time.Date(2024, 5, 2, 23, 30, 0, 0, est)}
	require.NoError(t, s.SaveStress(ctx, rec))

	none, err := s.LatestStress(ctx, "u1", day(2))
	require.NoError(t, err)
	assert.Nil(t, none)

	latest, err := s.LatestStress(ctx, "u1", day(3))
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "late", latest.ID)

	inRange, err := s.StressInRange(ctx, "u1", day(3), day(3))
	require.NoError(t, err)
	assert.Len(t, inRange, 1)

	inRange, err = s.StressInRange(ctx, "u1", day(2), day(2))
	require.NoError(t, err)
	assert.Empty(t, inRange)
}

func TestSleepAndWork_Latest(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t, t.TempDir())

	require.NoError(t, s.SaveSleep(ctx, &internal.SleepRecord{ID: "a", UserID: "u1", Date: day(4), DurationHours: 7}))
	require.NoError(t, s.SaveSleep(ctx, &internal.SleepRecord{ID: "b", UserID: "u1", Date: day(2), DurationHours: 5}))
	require.NoError(t, s.SaveWork(ctx, &internal.WorkActivity{ID: "w", UserID: "u1", Date: day(3), DurationHours: 11}))

	sl, err := s.LatestSleep(ctx, "u1", day(3))
	require.NoError(t, err)
	assert.Equal(t, "b", sl.ID)

	w, err := s.LatestWork(ctx, "u1", day(3).Add(23*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 11.0, w.DurationHours)

	w, err = s.LatestWork(ctx, "u2", day(3))
	require.NoError(t, err)
	assert.Nil(t, w)

	rng, err := s.SleepInRange(ctx, "u1", day(1), day(10))
	require.NoError(t, err)
	assert.Equal(t, "b", rng[0].ID)
	assert.Equal(t, "a", rng[1].ID)
}

func TestLatest_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t, t.TempDir())
	require.NoError(t, s.SaveWork(ctx, &internal.WorkActivity{ID: "w", UserID: "u1", Date: day(3), DurationHours: 9}))

	w, err := s.LatestWork(ctx, "u1", day(3))
	require.NoError(t, err)
	w.DurationHours = 100

	again, err := s.LatestWork(ctx, "u1", day(3))
	require.NoError(t, err)
	assert.Equal(t, 9.0, again.DurationHours)
}

func TestAssessments_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t, t.TempDir())
	base := time.Now()
	for i, lvl := range []float64{10, 20, 30} {
		require.NoError(t, s.SaveAssessment(ctx, &internal.BurnoutRiskAssessment{
			ID: string(rune('a' + i)), UserID: "u1", RiskLevel: lvl, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	two, err := s.ListAssessments(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, two, 2)
	assert.Equal(t, 30.0, two[0].RiskLevel)
	assert.Equal(t, 20.0, two[1].RiskLevel)

	all, err := s.ListAssessments(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUserRecommendations_UpdateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t, t.TempDir())
	ur := &internal.UserRecommendation{ID: "ur1", UserID: "u1", Status: internal.StatusPending, CreatedAt: time.Now()}
	require.NoError(t, s.SaveUserRecommendation(ctx, ur))

	got, err := s.GetUserRecommendation(ctx, "u1", "ur1")
	require.NoError(t, err)
	got.Status = internal.StatusAccepted
	require.NoError(t, s.UpdateUserRecommendation(ctx, got))

	got, err = s.GetUserRecommendation(ctx, "u1", "ur1")
	require.NoError(t, err)
	assert.Equal(t, internal.StatusAccepted, got.Status)

	_, err = s.GetUserRecommendation(ctx, "u2", "ur1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.UpdateUserRecommendation(ctx, &internal.UserRecommendation{ID: "nope", UserID: "u1"}), ErrNotFound)

	require.NoError(t, s.DeleteUserRecommendations(ctx, "u1"))
	list, err := s.ListUserRecommendations(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClose_PersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStorage(dir, internal.NopLogger())
	require.NoError(t, err)

	q := 6
	require.NoError(t, s.SaveSleep(ctx, &internal.SleepRecord{ID: "sl", UserID: "u1", Date: day(5), DurationHours: 6.5, Quality: &q}))
	require.NoError(t, s.SaveRecommendation(ctx, &internal.Recommendation{ID: "r1", Title: "Walk", Category: internal.CategoryExercise}))
	require.NoError(t, s.SaveAssessment(ctx, &internal.BurnoutRiskAssessment{
		ID: "a1", UserID: "u1", RiskLevel: 42,
		Factors: map[string]internal.RiskFactor{"stress": {Value: 4, Weight: 0.2}},
	}))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	info, err := os.Stat(filepath.Join(dir, "sleep_records.json"))
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)

	reopened := setupTestStorage(t, dir)
	sl, err := reopened.LatestSleep(ctx, "u1", day(5))
	require.NoError(t, err)
	require.NotNil(t, sl)
	assert.Equal(t, 6, *sl.Quality)

	catalog, err := reopened.ListRecommendations(ctx)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "Walk", catalog[0].Title)

	as, err := reopened.ListAssessments(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, as, 1)
	assert.Equal(t, 0.2, as[0].Factors["stress"].Weight)
}

func TestInsertSorted_StableForEqualKeys(t *testing.T) {
	ts := day(1)
	var list []*internal.StressRecord
	for _, id := range []string{"a", "b", "c"} {
		list = insertSorted(list, &internal.StressRecord{ID: id, CreatedAt: ts}, stressLess)
	}
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[2].ID)
}
