package services_test

import (
	"context"

	"github.com/guindo/fireplan-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockGenerator is a mock implementation of llm.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt, system, label string) (string, error) {
	args := m.Called(ctx, prompt, system, label)
	return args.String(0), args.Error(1)
}

// MockAnalysisStore is a mock implementation of repository.AnalysisStore
type MockAnalysisStore struct {
	mock.Mock
}

func (m *MockAnalysisStore) Save(ctx context.Context, rec *models.AnalysisRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAnalysisStore) Get(ctx context.Context, owner, id string) (*models.AnalysisRecord, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisRecord), args.Error(1)
}

func (m *MockAnalysisStore) List(ctx context.Context, owner string, limit int) ([]models.AnalysisSummary, error) {
	args := m.Called(ctx, owner, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnalysisSummary), args.Error(1)
}
