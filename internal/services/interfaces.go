package services

import (
	"context"

	"github.com/guindo/fireplan-api/internal/models"
)

// AnalysisServiceInterface defines the interface for analysis dispatch
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, profile models.UserProfile, t models.AnalysisType) (*models.AnalysisResponse, error)
	AnalyzeAll(ctx context.Context, profile models.UserProfile, owner string) (*models.BatchAnalysisResponse, error)
}

// HistoryServiceInterface defines the interface for reading saved batch runs
type HistoryServiceInterface interface {
	ListAnalyses(ctx context.Context, owner string, limit int) (*models.AnalysisListResponse, error)
	GetAnalysis(ctx context.Context, owner, id string) (*models.AnalysisRecord, error)
}
