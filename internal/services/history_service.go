package services

import (
	"context"

	"github.com/guindo/fireplan-api/internal/models"
	"github.com/guindo/fireplan-api/internal/repository"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
)

// HistoryService reads saved batch runs
type HistoryService struct {
	store repository.AnalysisStore
}

var _ HistoryServiceInterface = (*HistoryService)(nil)

// NewHistoryService creates a new history service. A nil store makes every
// call return errors.ErrUnavailable. Every read is scoped to one owner.
func NewHistoryService(store repository.AnalysisStore) *HistoryService {
	return &HistoryService{store: store}
}

// ListAnalyses returns summaries for owner, newest first
func (s *HistoryService) ListAnalyses(ctx context.Context, owner string, limit int) (*models.AnalysisListResponse, error) {
	if s.store == nil {
		return nil, apperrors.UnavailableError("analysis history")
	}
	if owner == "" {
		return nil, apperrors.InvalidInputError("owner", "required")
	}

	summaries, err := s.store.List(ctx, owner, limit)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.AnalysisSummary{}
	}

	return &models.AnalysisListResponse{
		Analyses: summaries,
		Count:    len(summaries),
	}, nil
}

// GetAnalysis returns one of owner's saved batch runs
func (s *HistoryService) GetAnalysis(ctx context.Context, owner, id string) (*models.AnalysisRecord, error) {
	if s.store == nil {
		return nil, apperrors.UnavailableError("analysis history")
	}
	if owner == "" {
		return nil, apperrors.InvalidInputError("owner", "required")
	}
	return s.store.Get(ctx, owner, id)
}
