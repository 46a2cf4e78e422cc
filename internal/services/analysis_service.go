package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guindo/fireplan-api/internal/cache"
	"github.com/guindo/fireplan-api/internal/models"
	"github.com/guindo/fireplan-api/internal/prompts"
	"github.com/guindo/fireplan-api/internal/repository"
	"github.com/guindo/fireplan-api/internal/validation"
	apperrors "github.com/guindo/fireplan-api/pkg/errors"
	"github.com/guindo/fireplan-api/pkg/llm"
	"github.com/guindo/fireplan-api/pkg/logger"
	"github.com/guindo/fireplan-api/pkg/metrics"
	"github.com/guindo/fireplan-api/pkg/profiling"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownAnalysisType is returned when a caller asks for a report kind
// that cannot be requested on its own
var ErrUnknownAnalysisType = errors.New("unknown analysis type")

// saveTimeout bounds the history write that follows a batch run
const saveTimeout = 5 * time.Second

// AnalysisService turns a profile into one or all reports
type AnalysisService struct {
	ai    llm.Generator
	cache *cache.AnalysisCache
	store repository.AnalysisStore
	now   func() time.Time
}

var _ AnalysisServiceInterface = (*AnalysisService)(nil)

// NewAnalysisService creates a new analysis service. analysisCache and store
// may be nil; a nil store disables history. Batch runs are saved only when
// an owner is given.
func NewAnalysisService(ai llm.Generator, analysisCache *cache.AnalysisCache, store repository.AnalysisStore) *AnalysisService {
	if analysisCache == nil {
		analysisCache = cache.NewAnalysisCache(0)
	}
	return &AnalysisService{
		ai:    ai,
		cache: analysisCache,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Analyze produces a single report. The type is checked before the profile,
// so an unknown type never reaches validation or the provider.
func (s *AnalysisService) Analyze(ctx context.Context, profile models.UserProfile, t models.AnalysisType) (*models.AnalysisResponse, error) {
	if !t.IsSingle() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAnalysisType, string(t))
	}

	profile, err := normalize(profile)
	if err != nil {
		return nil, err
	}

	text, err := s.run(ctx, t, profile)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResponse{
		Analysis:     text,
		AnalysisType: t,
		Timestamp:    s.now(),
	}, nil
}

// AnalyzeAll produces every report concurrently. The first failure cancels
// the remaining calls and fails the whole batch.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, profile models.UserProfile, owner string) (*models.BatchAnalysisResponse, error) {
	profile, err := normalize(profile)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]string, len(models.AllAnalysisTypes))

	g, gctx := errgroup.WithContext(ctx)
	for i, t := range models.AllAnalysisTypes {
		g.Go(func() error {
			text, err := s.run(gctx, t, profile)
			if err != nil {
				return err
			}
			results[i] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.BatchAnalysesTotal.WithLabelValues("error").Inc()
		logger.Error("Batch analysis failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, err
	}
	metrics.BatchAnalysesTotal.WithLabelValues("success").Inc()

	resp := &models.BatchAnalysisResponse{Timestamp: s.now()}
	for i, t := range models.AllAnalysisTypes {
		resp.Set(t, results[i])
	}

	// Anonymous runs are not saved; nothing could read them back
	if s.store != nil && owner != "" {
		resp.AnalysisID = s.save(ctx, owner, profile, resp)
	}

	logger.Info("Batch analysis completed",
		zap.String("analysis_id", resp.AnalysisID),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

// run produces the report for one type, consulting the cache first
func (s *AnalysisService) run(ctx context.Context, t models.AnalysisType, profile models.UserProfile) (text string, err error) {
	profiling.WithAnalysisType(ctx, string(t), func(ctx context.Context) {
		text, err = s.generate(ctx, t, profile)
	})
	return text, err
}

func (s *AnalysisService) generate(ctx context.Context, t models.AnalysisType, profile models.UserProfile) (string, error) {
	if text, ok := s.cache.Get(t, profile); ok {
		metrics.AnalysesTotal.WithLabelValues(string(t), "cached").Inc()
		return text, nil
	}

	prompt, err := prompts.Build(t, profile)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(t), "error").Inc()
		return "", fmt.Errorf("%w: %w", apperrors.InternalError("failed to build "+string(t)+" prompt"), err)
	}

	text, err := s.ai.Generate(ctx, prompt.User, prompt.System, string(t))
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(string(t), "error").Inc()
		return "", err
	}

	metrics.AnalysesTotal.WithLabelValues(string(t), "success").Inc()
	s.cache.Set(t, profile, text)
	return text, nil
}

// save writes a finished batch to history. Failures are logged and yield an
// empty id; the caller still gets its reports.
func (s *AnalysisService) save(ctx context.Context, owner string, profile models.UserProfile, resp *models.BatchAnalysisResponse) string {
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	rec := &models.AnalysisRecord{
		Owner:            owner,
		Profile:          profile,
		Career:           resp.Career,
		ROI:              resp.ROI,
		FIRE:             resp.FIRE,
		SideHustle:       resp.SideHustle,
		InterestsRoadmap: resp.InterestsRoadmap,
		CreatedAt:        resp.Timestamp,
	}
	if err := s.store.Save(saveCtx, rec); err != nil {
		logger.Error("Failed to save analysis history", zap.Error(err))
		return ""
	}
	return rec.ID
}

func normalize(profile models.UserProfile) (models.UserProfile, error) {
	normalized, err := validation.Normalize(profile)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				metrics.ProfileValidationFailures.WithLabelValues(f.Field).Inc()
			}
		}
		return models.UserProfile{}, err
	}
	return normalized, nil
}
