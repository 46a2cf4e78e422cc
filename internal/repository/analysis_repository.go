package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/guindo/fireplan-api/internal/models"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/guindo/fireplan-api/pkg/logger"
	"github.com/guindo/fireplan-api/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// AnalysisRepository stores batch runs in the analyses table
type AnalysisRepository struct {
	db Querier
}

var _ AnalysisStore = (*AnalysisRepository)(nil)

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(db Querier) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts a batch run. Every record needs an owner to be read back.
func (r *AnalysisRepository) Save(ctx context.Context, rec *models.AnalysisRecord) error {
	start := time.Now()
	operation := "saveAnalysis"

	if rec.Owner == "" {
		return apperrors.InvalidInputError("owner", "required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO analyses (
			id, owner, profile_data, career_analysis, roi_analysis,
			fire_analysis, side_hustle_analysis, interests_roadmap, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.Owner, profileJSON, rec.Career, rec.ROI,
		rec.FIRE, rec.SideHustle, rec.InterestsRoadmap, rec.CreatedAt,
	)

	duration := metrics.MeasureDuration(start)
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	recordMetrics(operation, "success", duration)
	logger.LogAPICall("postgres", operation, "success", duration, zap.String("analysis_id", rec.ID))
	return nil
}

// Get fetches one batch run belonging to owner
func (r *AnalysisRepository) Get(ctx context.Context, owner, id string) (*models.AnalysisRecord, error) {
	start := time.Now()
	operation := "getAnalysis"

	if owner == "" {
		return nil, apperrors.InvalidInputError("owner", "required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundError("analysis")
	}

	var (
		rec         models.AnalysisRecord
		profileJSON []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id::text, owner, profile_data, career_analysis, roi_analysis,
		       fire_analysis, side_hustle_analysis, interests_roadmap, created_at
		FROM analyses
		WHERE id = $1 AND owner = $2`, id, owner,
	).Scan(&rec.ID, &rec.Owner, &profileJSON, &rec.Career, &rec.ROI,
		&rec.FIRE, &rec.SideHustle, &rec.InterestsRoadmap, &rec.CreatedAt)

	duration := metrics.MeasureDuration(start)
	if errors.Is(err, pgx.ErrNoRows) {
		recordMetrics(operation, "not_found", duration)
		return nil, apperrors.NotFoundError("analysis")
	}
	if err != nil {
		recordMetrics(operation, "error", duration)
		logger.LogAPICall("postgres", operation, "error", duration, zap.Error(err))
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &rec.Profile); err != nil {
		recordMetrics(operation, "error", duration)
		return nil, fmt.Errorf("failed to decode stored profile: %w", err)
	}

	recordMetrics(operation, "success", duration)
	return &rec, nil
}

// List returns batch run summaries newest first
func (r *AnalysisRepository) List(ctx context.Context, owner string, limit int) ([]models.AnalysisSummary, error) {
	start := time.Now()
	operation := "listAnalyses"

	if owner == "" {
		return nil, apperrors.InvalidInputError("owner", "required")
	}
	limit = clampLimit(limit)

	rows, err := r.db.Query(ctx, `
		SELECT id::text, owner, COALESCE(profile_data->>'name', ''), created_at
		FROM analyses
		WHERE owner = $1
		ORDER BY created_at DESC
		LIMIT $2`, owner, limit,
	)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.AnalysisSummary, 0, limit)
	for rows.Next() {
		var s models.AnalysisSummary
		if err := rows.Scan(&s.ID, &s.Owner, &s.Name, &s.CreatedAt); err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return summaries, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// recordMetrics records database operation metrics
func recordMetrics(operation, status string, duration float64) {
	metrics.DBRequestDuration.WithLabelValues(operation, status).Observe(duration)
	metrics.DBRequestTotal.WithLabelValues(operation, status).Inc()
}
