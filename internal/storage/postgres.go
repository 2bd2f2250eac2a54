package storage

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xCAELESTISOx/pacificapp--backend/internal"
)

//go:embed schema.sql
var schemaSQL string

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

// NewPostgresStorage connects and applies schema.sql. The schema is
// idempotent, so every start can run it.
func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Errorf("failed to ping postgres: %v", err)
		return nil, err
	}
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		pool.Close()
		logger.Errorf("failed to apply schema: %v", err)
		return nil, fmt.Errorf("storage: apply schema: %w", err)
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- StressRepository ---
const stressColumns = `id, user_id, level, notes, created_at`

func scanStress(row pgx.Row) (internal.StressRecord, error) {
	var r internal.StressRecord
	err := row.Scan(&r.ID, &r.UserID, &r.Level, &r.Notes, &r.CreatedAt)
	return r, err
}

func (p *PostgresStorage) SaveStress(ctx context.Context, rec *internal.StressRecord) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO stress_records (`+stressColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		rec.ID, rec.UserID, rec.Level, rec.Notes, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert stress record: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListStress(ctx context.Context, userID string) ([]internal.StressRecord, error) {
	return queryAll(ctx, p, scanStress,
		`SELECT `+stressColumns+` FROM stress_records WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (p *PostgresStorage) CountStress(ctx context.Context, userID string) (int, error) {
	return countRows(ctx, p, `SELECT COUNT(*) FROM stress_records WHERE user_id = $1`, userID)
}

func (p *PostgresStorage) LatestStress(ctx context.Context, userID string, asOf time.Time) (*internal.StressRecord, error) {
	return queryLatest(ctx, p, scanStress,
		`SELECT `+stressColumns+` FROM stress_records
		 WHERE user_id = $1 AND created_at < $2
		 ORDER BY created_at DESC LIMIT 1`, userID, nextDay(asOf))
}

func (p *PostgresStorage) StressInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.StressRecord, error) {
	return queryAll(ctx, p, scanStress,
		`SELECT `+stressColumns+` FROM stress_records
		 WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at ASC`, userID, internal.Day(start), nextDay(end))
}

// --- SleepRepository ---
const sleepColumns = `id, user_id, date, duration_hours, quality, notes, created_at`

func scanSleep(row pgx.Row) (internal.SleepRecord, error) {
	var r internal.SleepRecord
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.DurationHours, &r.Quality, &r.Notes, &r.CreatedAt)
	return r, err
}

func (p *PostgresStorage) SaveSleep(ctx context.Context, rec *internal.SleepRecord) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO sleep_records (`+sleepColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.UserID, rec.Date, rec.DurationHours, rec.Quality, rec.Notes, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert sleep record: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListSleep(ctx context.Context, userID string) ([]internal.SleepRecord, error) {
	return queryAll(ctx, p, scanSleep,
		`SELECT `+sleepColumns+` FROM sleep_records WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
}

func (p *PostgresStorage) CountSleep(ctx context.Context, userID string) (int, error) {
	return countRows(ctx, p, `SELECT COUNT(*) FROM sleep_records WHERE user_id = $1`, userID)
}

func (p *PostgresStorage) LatestSleep(ctx context.Context, userID string, asOf time.Time) (*internal.SleepRecord, error) {
	return queryLatest(ctx, p, scanSleep,
		`SELECT `+sleepColumns+` FROM sleep_records
		 WHERE user_id = $1 AND date <= $2
		 ORDER BY date DESC, created_at DESC LIMIT 1`, userID, internal.Day(asOf))
}

func (p *PostgresStorage) SleepInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.SleepRecord, error) {
	return queryAll(ctx, p, scanSleep,
		`SELECT `+sleepColumns+` FROM sleep_records
		 WHERE user_id = $1 AND date BETWEEN $2 AND $3
		 ORDER BY date ASC, created_at ASC`, userID, internal.Day(start), internal.Day(end))
}

// --- WorkRepository ---
const workColumns = `id, user_id, date, duration_hours, breaks_count, breaks_total_minutes, productivity, notes, created_at`

func scanWork(row pgx.Row) (internal.WorkActivity, error) {
	var r internal.WorkActivity
	err := row.Scan(&r.ID, &r.UserID, &r.Date, &r.DurationHours, &r.BreaksCount, &r.BreaksTotalMinutes,
		&r.Productivity, &r.Notes, &r.CreatedAt)
	return r, err
}

func (p *PostgresStorage) SaveWork(ctx context.Context, rec *internal.WorkActivity) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO work_activities (`+workColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.Date, rec.DurationHours, rec.BreaksCount, rec.BreaksTotalMinutes,
		rec.Productivity, rec.Notes, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert work activity: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListWork(ctx context.Context, userID string) ([]internal.WorkActivity, error) {
	return queryAll(ctx, p, scanWork,
		`SELECT `+workColumns+` FROM work_activities WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
}

func (p *PostgresStorage) CountWork(ctx context.Context, userID string) (int, error) {
	return countRows(ctx, p, `SELECT COUNT(*) FROM work_activities WHERE user_id = $1`, userID)
}

func (p *PostgresStorage) LatestWork(ctx context.Context, userID string, asOf time.Time) (*internal.WorkActivity, error) {
	return queryLatest(ctx, p, scanWork,
		`SELECT `+workColumns+` FROM work_activities
		 WHERE user_id = $1 AND date <= $2
		 ORDER BY date DESC, created_at DESC LIMIT 1`, userID, internal.Day(asOf))
}

func (p *PostgresStorage) WorkInRange(ctx context.Context, userID string, start, end time.Time) ([]internal.WorkActivity, error) {
	return queryAll(ctx, p, scanWork,
		`SELECT `+workColumns+` FROM work_activities
		 WHERE user_id = $1 AND date BETWEEN $2 AND $3
		 ORDER BY date ASC, created_at ASC`, userID, internal.Day(start), internal.Day(end))
}

// --- AssessmentRepository ---
const assessmentColumns = `id, user_id, date, risk_level, raw_score, factors, recommendations, created_at`

func scanAssessment(row pgx.Row) (internal.BurnoutRiskAssessment, error) {
	var a internal.BurnoutRiskAssessment
	err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.RiskLevel, &a.RawScore, &a.Factors, &a.Recommendations, &a.CreatedAt)
	return a, err
}

func (p *PostgresStorage) SaveAssessment(ctx context.Context, a *internal.BurnoutRiskAssessment) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO burnout_risks (`+assessmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.UserID, a.Date, a.RiskLevel, a.RawScore, a.Factors, a.Recommendations, a.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert burnout risk: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListAssessments(ctx context.Context, userID string, limit int) ([]internal.BurnoutRiskAssessment, error) {
	q := `SELECT ` + assessmentColumns + ` FROM burnout_risks WHERE user_id = $1 ORDER BY created_at DESC`
	if limit > 0 {
		return queryAll(ctx, p, scanAssessment, q+` LIMIT $2`, userID, limit)
	}
	return queryAll(ctx, p, scanAssessment, q, userID)
}

// --- RecommendationRepository ---
const catalogColumns = `id, type, title, description, duration_minutes, category, is_quick, created_at`

func scanRecommendation(row pgx.Row) (internal.Recommendation, error) {
	var r internal.Recommendation
	err := row.Scan(&r.ID, &r.Type, &r.Title, &r.Description, &r.DurationMinutes, &r.Category, &r.IsQuick, &r.CreatedAt)
	return r, err
}

func (p *PostgresStorage) SaveRecommendation(ctx context.Context, rec *internal.Recommendation) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO recommendations (`+catalogColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID, rec.Type, rec.Title, rec.Description, rec.DurationMinutes, rec.Category, rec.IsQuick, rec.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert recommendation: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListRecommendations(ctx context.Context) ([]internal.Recommendation, error) {
	return queryAll(ctx, p, scanRecommendation,
		`SELECT `+catalogColumns+` FROM recommendations ORDER BY created_at ASC, id ASC`)
}

const userRecSelect = `SELECT ur.id, ur.user_id, ur.status, ur.reason, ur.user_feedback, ur.user_rating, ur.completed_at, ur.created_at,
	r.id, r.type, r.title, r.description, r.duration_minutes, r.category, r.is_quick, r.created_at
	FROM user_recommendations ur JOIN recommendations r ON r.id = ur.recommendation_id`

func scanUserRecommendation(row pgx.Row) (internal.UserRecommendation, error) {
	var ur internal.UserRecommendation
	r := &ur.Recommendation
	err := row.Scan(&ur.ID, &ur.UserID, &ur.Status, &ur.Reason, &ur.UserFeedback, &ur.UserRating, &ur.CompletedAt, &ur.CreatedAt,
		&r.ID, &r.Type, &r.Title, &r.Description, &r.DurationMinutes, &r.Category, &r.IsQuick, &r.CreatedAt)
	return ur, err
}

func (p *PostgresStorage) SaveUserRecommendation(ctx context.Context, ur *internal.UserRecommendation) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO user_recommendations
		(id, user_id, recommendation_id, status, reason, user_feedback, user_rating, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		ur.ID, ur.UserID, ur.Recommendation.ID, ur.Status, ur.Reason, ur.UserFeedback, ur.UserRating, ur.CompletedAt, ur.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert user recommendation: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) UpdateUserRecommendation(ctx context.Context, ur *internal.UserRecommendation) error {
	tag, err := p.pool.Exec(ctx, `UPDATE user_recommendations
		SET status = $3, user_feedback = $4, user_rating = $5, completed_at = $6
		WHERE user_id = $1 AND id = $2`,
		ur.UserID, ur.ID, ur.Status, ur.UserFeedback, ur.UserRating, ur.CompletedAt)
	if err != nil {
		p.logger.Errorf("failed to update user recommendation: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *PostgresStorage) GetUserRecommendation(ctx context.Context, userID, id string) (*internal.UserRecommendation, error) {
	ur, err := queryLatest(ctx, p, scanUserRecommendation, userRecSelect+` WHERE ur.user_id = $1 AND ur.id = $2`, userID, id)
	if err != nil {
		return nil, err
	}
	if ur == nil {
		return nil, ErrNotFound
	}
	return ur, nil
}

func (p *PostgresStorage) ListUserRecommendations(ctx context.Context, userID string) ([]internal.UserRecommendation, error) {
	return queryAll(ctx, p, scanUserRecommendation, userRecSelect+` WHERE ur.user_id = $1 ORDER BY ur.created_at DESC, ur.id DESC`, userID)
}

func (p *PostgresStorage) DeleteUserRecommendations(ctx context.Context, userID string) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM user_recommendations WHERE user_id = $1`, userID); err != nil {
		p.logger.Errorf("failed to delete user recommendations: %v", err)
		return err
	}
	return nil
}

// --- query helpers ---

func countRows(ctx context.Context, p *PostgresStorage, sql string, args ...any) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		p.logger.Errorf("failed to count rows: %v", err)
		return 0, err
	}
	return n, nil
}

func queryAll[T any](ctx context.Context, p *PostgresStorage, scan func(pgx.Row) (T, error), sql string, args ...any) ([]T, error) {
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		p.logger.Errorf("query failed: %v", err)
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			p.logger.Errorf("failed to scan row: %v", err)
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// queryLatest returns (nil, nil) when no row matches.
func queryLatest[T any](ctx context.Context, p *PostgresStorage, scan func(pgx.Row) (T, error), sql string, args ...any) (*T, error) {
	item, err := scan(p.pool.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		p.logger.Errorf("query failed: %v", err)
		return nil, err
	}
	return &item, nil
}

func nextDay(t time.Time) time.Time {
	return internal.Day(t).AddDate(0, 0, 1)
}

// --- Compile-time assertions ---
var _ Store = (*PostgresStorage)(nil)
