package repository

import (
	"context"

	"github.com/guindo/fireplan-api/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// AnalysisStore persists batch analysis runs
type AnalysisStore interface {
	// Save inserts rec, filling ID and CreatedAt when they are empty.
	// rec.Owner is required.
	Save(ctx context.Context, rec *models.AnalysisRecord) error

	// Get fetches one record by id. Records saved under another owner are
	// reported as not found.
	Get(ctx context.Context, owner, id string) (*models.AnalysisRecord, error)

	// List returns owner's summaries newest first
	List(ctx context.Context, owner string, limit int) ([]models.AnalysisSummary, error)
}

// Querier is the subset of *pgxpool.Pool the repository needs
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
