package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

var testUser = &internal.User{ID: "u1", Name: "Test User"}

func setupTestStore(t *testing.T) *storage.FileStorage {
	t.Helper()
	s, err := storage.NewFileStorage(t.TempDir(), internal.NopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// freezeClock pins now() for the duration of a test.
func freezeClock(t *testing.T, ts time.Time) {
	t.Helper()
	orig := now
	now = func() time.Time { return ts }
	t.Cleanup(func() { now = orig })
}

func date(m time.Month, d int) time.Time {
	return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

type mockReader struct {
	mock.Mock
}

func (m *mockReader) LatestStress(ctx context.Context, userID string, asOf time.Time) (*internal.StressRecord, error) {
	args := m.Called(ctx, userID, asOf)
	rec, _ := args.Get(0).(*internal.StressRecord)
	return rec, args.Error(1)
}

func (m *mockReader) LatestSleep(ctx context.Context, userID string, asOf time.Time) (*internal.SleepRecord, error) {
	args := m.Called(ctx, userID, asOf)
	rec, _ := args.Get(0).(*internal.SleepRecord)
	return rec, args.Error(1)
}

func (m *mockReader) LatestWork(ctx context.Context, userID string, asOf time.Time) (*internal.WorkActivity, error) {
	args := m.Called(ctx, userID, asOf)
	rec, _ := args.Get(0).(*internal.WorkActivity)
	return rec, args.Error(1)
}

func TestParsePeriod(t *testing.T) {
	today := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)

	p, err := ParsePeriod("", "", 7, today)
	require.NoError(t, err)
	assert.Equal(t, date(3, 8), p.Start)
	assert.Equal(t, date(3, 15), p.End)
	assert.Equal(t, 7, p.Span())

	p, err = ParsePeriod("2024-03-01", "2024-03-10", 30, today)
	require.NoError(t, err)
	assert.Equal(t, date(3, 1), p.Start)
	assert.Equal(t, date(2, 20), p.WithPrevious().Start)

	p, err = ParsePeriod("", "2024-03-10", 30, today)
	require.NoError(t, err)
	assert.Equal(t, date(2, 9), p.Start)

	_, err = ParsePeriod("03/01/2024", "", 7, today)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParsePeriod("2024-03-10", "2024-03-01", 7, today)
	assert.ErrorIs(t, err, ErrInvalidRange)

	p, err = ParsePeriod("2023-03-15", "2024-03-15", 7, today)
	require.NoError(t, err)
	assert.Equal(t, MaxPeriodDays, p.Span())

	_, err = ParsePeriod("2023-03-14", "2024-03-15", 7, today)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = ParsePeriod("0001-01-01", "9999-12-31", 7, today)
	assert.ErrorIs(t, err, ErrInvalidRange)

	asOf, err := ParseAsOf("", today)
	require.NoError(t, err)
	assert.Equal(t, date(3, 15), asOf)
	_, err = ParseAsOf("yesterday", today)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		valid bool
	}{
		{"stress ok", ValidateStressRequest(&StressRequest{Level: intPtr(0)}), true},
		{"stress missing level", ValidateStressRequest(&StressRequest{}), false},
		{"stress above 100", ValidateStressRequest(&StressRequest{Level: intPtr(101)}), false},
		{"sleep ok without quality", ValidateSleepRequest(&SleepRequest{Date: "2024-03-01", DurationHours: floatPtr(7.5)}), true},
		{"sleep bad date", ValidateSleepRequest(&SleepRequest{Date: "01.03.2024", DurationHours: floatPtr(7)}), false},
		{"sleep quality out of range", ValidateSleepRequest(&SleepRequest{Date: "2024-03-01", DurationHours: floatPtr(7), Quality: intPtr(11)}), false},
		{"sleep over 24h", ValidateSleepRequest(&SleepRequest{Date: "2024-03-01", DurationHours: floatPtr(25)}), false},
		{"work ok", ValidateWorkRequest(&WorkRequest{Date: "2024-03-01", DurationHours: floatPtr(9), BreaksCount: 2, Productivity: intPtr(6)}), true},
		{"work negative breaks", ValidateWorkRequest(&WorkRequest{Date: "2024-03-01", DurationHours: floatPtr(9), BreaksCount: -1}), false},
		{"status ok", ValidateStatusUpdate(&StatusUpdateRequest{Status: internal.StatusCompleted, UserRating: intPtr(5)}), true},
		{"status unknown", ValidateStatusUpdate(&StatusUpdateRequest{Status: "done"}), false},
		{"rating too high", ValidateStatusUpdate(&StatusUpdateRequest{Status: internal.StatusAccepted, UserRating: intPtr(6)}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.valid {
				assert.NoError(t, tt.err)
			} else {
				assert.Error(t, tt.err)
			}
		})
	}
}

func TestCreateRecords(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)
	freezeClock(t, date(3, 5).Add(10*time.Hour))

	st, err := CreateStressRecord(ctx, s, testUser, &StressRequest{Level: intPtr(40), Notes: "deadline"})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, "u1", st.UserID)

	sl, err := CreateSleepRecord(ctx, s, testUser, &SleepRequest{Date: "2024-03-04", DurationHours: floatPtr(6)})
	require.NoError(t, err)
	assert.Nil(t, sl.Quality)
	assert.Equal(t, date(3, 4), sl.Date)

	_, err = CreateWorkActivity(ctx, s, testUser, &WorkRequest{Date: "2024-3-4", DurationHours: floatPtr(6)})
	assert.ErrorIs(t, err, ErrInvalidDate)

	latest, err := s.LatestStress(ctx, "u1", date(3, 5))
	require.NoError(t, err)
	assert.Equal(t, st.ID, latest.ID)
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	for _, r := range []internal.StressRecord{
		{ID: "p", UserID: "u1", Level: 20, CreatedAt: date(3, 3)},
		{ID: "a", UserID: "u1", Level: 40, CreatedAt: date(3, 8).Add(9 * time.Hour)},
		{ID: "b", UserID: "u1", Level: 60, CreatedAt: date(3, 8).Add(20 * time.Hour)},
		{ID: "c", UserID: "u1", Level: 80, CreatedAt: date(3, 10)},
	} {
		require.NoError(t, s.SaveStress(ctx, &r))
	}
	p := Period{Start: date(3, 8), End: date(3, 10)}

	st, err := GetStressStatistics(ctx, s, "u1", p)
	require.NoError(t, err)
	assert.Equal(t, 3, st.TotalRecords)
	assert.InDelta(t, 60.0, st.AvgLevel, 1e-9)
	assert.Equal(t, 40.0, st.MinLevel)
	assert.Equal(t, 80.0, st.MaxLevel)
	require.Len(t, st.Daily, 3)
	assert.Equal(t, 2, st.Daily[0].Count)
	assert.Equal(t, 0, st.Daily[1].Count)
	// previous period is [3/6, 3/7], which holds nothing
	assert.InDelta(t, 60.0, st.Trend.Value, 1e-9)
	assert.Equal(t, "up", st.Trend.Direction)

	for _, r := range []internal.SleepRecord{
		{ID: "s1", UserID: "u1", Date: date(3, 8), DurationHours: 6, Quality: intPtr(4)},
		{ID: "s2", UserID: "u1", Date: date(3, 9), DurationHours: 8},
	} {
		require.NoError(t, s.SaveSleep(ctx, &r))
	}
	sl, err := GetSleepStatistics(ctx, s, "u1", p)
	require.NoError(t, err)
	assert.Equal(t, 7.0, sl.AvgDuration)
	assert.Equal(t, 4.0, sl.AvgQuality)
	assert.Equal(t, 2, sl.TotalRecords)

	require.NoError(t, s.SaveWork(ctx, &internal.WorkActivity{ID: "w", UserID: "u1", Date: date(3, 9), DurationHours: 10, BreaksCount: 3, BreaksTotalMinutes: 45}))
	w, err := GetWorkStatistics(ctx, s, "u1", p)
	require.NoError(t, err)
	assert.Equal(t, 10.0, w.AvgDuration)
	assert.Equal(t, 3.0, w.AvgBreaks)
	assert.Equal(t, 45.0, w.AvgBreaksDuration)
	assert.Equal(t, 0.0, w.AvgProductivity)
}

func TestComputeRisk_UsesLatestRecords(t *testing.T) {
	ctx := context.Background()
	asOf := date(3, 10)
	m := new(mockReader)
	m.On("LatestWork", ctx, "u1", asOf).Return(&internal.WorkActivity{Date: date(3, 9), DurationHours: 10}, nil)
	m.On("LatestStress", ctx, "u1", asOf).Return(&internal.StressRecord{CreatedAt: date(3, 9), Level: 70}, nil)
	m.On("LatestSleep", ctx, "u1", asOf).Return(&internal.SleepRecord{Date: date(3, 9), DurationHours: 6, Quality: intPtr(5)}, nil)

	a, err := ComputeRisk(ctx, m, "u1", asOf)
	require.NoError(t, err)
	// overtime 2*.15 + workday .8*.1 + stress 7*.2 + quality 5*.2 + deprivation .8*.2
	assert.InDelta(t, 29.4, a.RiskLevel, 1e-9)
	assert.Equal(t, "u1", a.UserID)
	assert.Empty(t, a.ID)
	m.AssertExpectations(t)
}

func TestComputeRisk_StoreError(t *testing.T) {
	ctx := context.Background()
	m := new(mockReader)
	m.On("LatestWork", ctx, "u1", mock.Anything).Return(nil, errors.New("boom"))

	_, err := ComputeRisk(ctx, m, "u1", date(3, 10))
	assert.EqualError(t, err, "boom")
	m.AssertNotCalled(t, "LatestStress", mock.Anything, mock.Anything, mock.Anything)
}

func TestCalculateAndStoreRisk(t *testing.T) {
	ctx := context.Background()
	s := setupTestStore(t)

	_, err := LatestRisk(ctx, s, "u1")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	freezeClock(t, date(3, 10).Add(8*time.Hour))
	first, err := CalculateAndStoreRisk(ctx, s, "u1", date(3, 10))
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.InDelta(t, 6.0, first.RiskLevel, 1e-9)

	require.NoError(t, s.SaveStress(ctx, &internal.StressRecord{ID: "x", UserID: "u1", Level: 90, CreatedAt: date(3, 10)}))
	freezeClock(t, date(3, 10).Add(9*time.Hour))
	second, err := CalculateAndStoreRisk(ctx, s, "u1", date(3, 10))
	require.NoError(t, err)

	latest, err := LatestRisk(ctx, s, "u1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	history, err := RiskHistory(ctx, s, "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[1].ID)

	empty, err := RiskHistory(ctx, s, "nobody", 10)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
