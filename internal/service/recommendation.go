package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
	"github.com/xCAELESTISOx/pacificapp--backend/internal/storage"
)

const DefaultRecommendationBatch = 5

var ErrEmptyCatalog = errors.New("recommendation catalog is empty, seed it first")

type StatusUpdateRequest struct {
	Status       string `json:"status" validate:"required,oneof=pending accepted completed rejected"`
	UserFeedback string `json:"user_feedback,omitempty" validate:"max=2000"`
	UserRating   *int   `json:"user_rating,omitempty" validate:"omitempty,gte=1,lte=5"`
}

func ValidateStatusUpdate(req *StatusUpdateRequest) error { return validate.Struct(req) }

// CatalogFilter narrows the template listing. Zero values match everything.
type CatalogFilter struct {
	Category string
	Quick    *bool
}

type UserRecommendationFilter struct {
	Status   string
	Category string
}

// RecommendationCounts summarizes a user's assignments by status.
type RecommendationCounts struct {
	Pending   int                           `json:"pending"`
	Accepted  int                           `json:"accepted"`
	Completed int                           `json:"completed"`
	Latest    []internal.UserRecommendation `json:"latest"`
}

// DefaultCatalog is the template set the seed command installs.
func DefaultCatalog() []internal.Recommendation {
	return []internal.Recommendation{
		{Type: "physical", Title: "Morning exercise", Description: "Spend 10 minutes on a morning workout to stay energized through the day", DurationMinutes: 10, Category: internal.CategoryExercise, IsQuick: true},
		{Type: "physical", Title: "Walk outside", Description: "Take a 30 minute walk in fresh air to lift your mood and physical condition", DurationMinutes: 30, Category: internal.CategoryExercise},
		{Type: "mental", Title: "Mindfulness meditation", Description: "A 5 minute meditation to relieve stress and improve focus", DurationMinutes: 5, Category: internal.CategoryMindfulness, IsQuick: true},
		{Type: "mental", Title: "Deep breathing", Description: "Practice deep breathing to release tension during the working day", DurationMinutes: 3, Category: internal.CategoryMindfulness, IsQuick: true},
		{Type: "social", Title: "Coffee break with colleagues", Description: "Spend 15 minutes in informal conversation with colleagues", DurationMinutes: 15, Category: internal.CategorySocial, IsQuick: true},
		{Type: "social", Title: "Meet friends", Description: "Plan a meeting with friends ahead of time to rest and recharge", DurationMinutes: 120, Category: internal.CategorySocial},
		{Type: "work", Title: "Pomodoro technique", Description: "Work for 25 minutes, then rest for 5. Repeat 4 times, then take a long break", DurationMinutes: 25, Category: internal.CategoryWorkBalance, IsQuick: true},
		{Type: "work", Title: "Plan your day", Description: "Spend 15 minutes planning the day's tasks to work more effectively", DurationMinutes: 15, Category: internal.CategoryWorkBalance, IsQuick: true},
	}
}

// SeedRecommendationCatalog installs DefaultCatalog when the catalog is
// empty and reports how many templates were added.
func SeedRecommendationCatalog(ctx context.Context, repo storage.RecommendationRepository) (int, error) {
	existing, err := repo.ListRecommendations(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	base := now()
	for i, rec := range DefaultCatalog() {
		rec.ID = uuid.NewString()
		rec.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		if err := repo.SaveRecommendation(ctx, &rec); err != nil {
			return i, fmt.Errorf("seed %q: %w", rec.Title, err)
		}
	}
	return len(DefaultCatalog()), nil
}

func ListRecommendations(ctx context.Context, repo storage.RecommendationRepository, f CatalogFilter) ([]internal.Recommendation, error) {
	all, err := repo.ListRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	out := []internal.Recommendation{}
	for _, r := range all {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Quick != nil && r.IsQuick != *f.Quick {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func ListUserRecommendations(ctx context.Context, repo storage.RecommendationRepository, userID string, f UserRecommendationFilter) ([]internal.UserRecommendation, error) {
	all, err := repo.ListUserRecommendations(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []internal.UserRecommendation{}
	for _, ur := range all {
		if f.Status != "" && ur.Status != f.Status {
			continue
		}
		if f.Category != "" && ur.Recommendation.Category != f.Category {
			continue
		}
		out = append(out, ur)
	}
	return out, nil
}

// RequestNewRecommendations assigns up to limit templates the user has never
// been given, in catalog order. Timestamps within a batch are staggered so
// newest-first listings are the reverse of catalog order on every backend.
func RequestNewRecommendations(ctx context.Context, repo storage.RecommendationRepository, userID string, limit int) ([]internal.UserRecommendation, error) {
	if limit <= 0 {
		limit = DefaultRecommendationBatch
	}
	catalog, err := repo.ListRecommendations(ctx)
	if err != nil {
		return nil, err
	}
	assigned, err := repo.ListUserRecommendations(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(assigned))
	for _, ur := range assigned {
		seen[ur.Recommendation.ID] = true
	}

	created := []internal.UserRecommendation{}
	ts := now()
	for _, rec := range catalog {
		if len(created) == limit {
			break
		}
		if seen[rec.ID] {
			continue
		}
		ur := internal.UserRecommendation{
			ID:             uuid.NewString(),
			UserID:         userID,
			Recommendation: rec,
			Status:         internal.StatusPending,
			CreatedAt:      ts.Add(time.Duration(len(created)) * time.Millisecond),
		}
		if err := repo.SaveUserRecommendation(ctx, &ur); err != nil {
			return nil, err
		}
		created = append(created, ur)
	}
	return created, nil
}

// AssignAllRecommendations replaces the user's assignments with one pending
// entry per catalog template.
func AssignAllRecommendations(ctx context.Context, repo storage.RecommendationRepository, userID string) (int, error) {
	catalog, err := repo.ListRecommendations(ctx)
	if err != nil {
		return 0, err
	}
	if len(catalog) == 0 {
		return 0, ErrEmptyCatalog
	}
	if err := repo.DeleteUserRecommendations(ctx, userID); err != nil {
		return 0, err
	}
	ts := now()
	for i, rec := range catalog {
		ur := internal.UserRecommendation{
			ID:             uuid.NewString(),
			UserID:         userID,
			Recommendation: rec,
			Status:         internal.StatusPending,
			Reason:         "assigned by system",
			CreatedAt:      ts.Add(time.Duration(i) * time.Millisecond),
		}
		if err := repo.SaveUserRecommendation(ctx, &ur); err != nil {
			return i, err
		}
	}
	return len(catalog), nil
}

func UpdateRecommendationStatus(ctx context.Context, repo storage.RecommendationRepository, userID, id string, req *StatusUpdateRequest) (*internal.UserRecommendation, error) {
	ur, err := repo.GetUserRecommendation(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	ur.Status = req.Status
	if req.UserFeedback != "" {
		ur.UserFeedback = req.UserFeedback
	}
	if req.UserRating != nil {
		ur.UserRating = req.UserRating
	}
	if req.Status == internal.StatusCompleted {
		ts := now()
		ur.CompletedAt = &ts
	} else {
		ur.CompletedAt = nil
	}
	if err := repo.UpdateUserRecommendation(ctx, ur); err != nil {
		return nil, err
	}
	return ur, nil
}

// CountRecommendations tallies assignments by status and keeps the newest
// five.
func CountRecommendations(list []internal.UserRecommendation) RecommendationCounts {
	c := RecommendationCounts{Latest: []internal.UserRecommendation{}}
	for _, ur := range list {
		switch ur.Status {
		case internal.StatusPending:
			c.Pending++
		case internal.StatusAccepted:
			c.Accepted++
		case internal.StatusCompleted:
			c.Completed++
		}
	}
	n := min(len(list), 5)
	c.Latest = append(c.Latest, list[:n]...)
	return c
}
