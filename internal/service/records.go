package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

var validate = validator.New()

// now is swapped in tests.
var now = time.Now

type StressRequest struct {
	Level *int   `json:"level" validate:"required,gte=0,lte=100"`
	Notes string `json:"notes,omitempty" validate:"max=2000"`
}

type SleepRequest struct {
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	DurationHours *float64 `json:"duration_hours" validate:"required,gte=0,lte=24"`
	Quality       *int     `json:"quality,omitempty" validate:"omitempty,gte=1,lte=10"`
	Notes         string   `json:"notes,omitempty" validate:"max=2000"`
}

type WorkRequest struct {
	Date               string   `json:"date" validate:"required,datetime=2006-01-02"`
	DurationHours      *float64 `json:"duration_hours" validate:"required,gte=0,lte=24"`
	BreaksCount        int      `json:"breaks_count" validate:"gte=0"`
	BreaksTotalMinutes int      `json:"breaks_total_minutes" validate:"gte=0,lte=1440"`
	Productivity       *int     `json:"productivity,omitempty" validate:"omitempty,gte=1,lte=10"`
	Notes              string   `json:"notes,omitempty" validate:"max=2000"`
}

func ValidateStressRequest(req *StressRequest) error { return validate.Struct(req) }
func ValidateSleepRequest(req *SleepRequest) error   { return validate.Struct(req) }
func ValidateWorkRequest(req *WorkRequest) error     { return validate.Struct(req) }

func CreateStressRecord(ctx context.Context, repo storage.StressRepository, user *internal.User, req *StressRequest) (*internal.StressRecord, error) {
	rec := &internal.StressRecord{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Level:     *req.Level,
		Notes:     req.Notes,
		CreatedAt: now(),
	}
	if err := repo.SaveStress(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func CreateSleepRecord(ctx context.Context, repo storage.SleepRepository, user *internal.User, req *SleepRequest) (*internal.SleepRecord, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	rec := &internal.SleepRecord{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Date:          date,
		DurationHours: *req.DurationHours,
		Quality:       req.Quality,
		Notes:         req.Notes,
		CreatedAt:     now(),
	}
	if err := repo.SaveSleep(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func CreateWorkActivity(ctx context.Context, repo storage.WorkRepository, user *internal.User, req *WorkRequest) (*internal.WorkActivity, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	rec := &internal.WorkActivity{
		ID:                 uuid.NewString(),
		UserID:             user.ID,
		Date:               date,
		DurationHours:      *req.DurationHours,
		BreaksCount:        req.BreaksCount,
		BreaksTotalMinutes: req.BreaksTotalMinutes,
		Productivity:       req.Productivity,
		Notes:              req.Notes,
		CreatedAt:          now(),
	}
	if err := repo.SaveWork(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
