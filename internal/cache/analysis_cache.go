package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/guindo/fireplan-api/internal/models"
	"github.com/guindo/fireplan-api/pkg/logger"
	"github.com/guindo/fireplan-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const analysisCacheName = "analysis"

// AnalysisCache keeps generated reports in memory, keyed by analysis type and
// the normalized profile. Identical questionnaires skip the model call.
type AnalysisCache struct {
	cache   *gocache.Cache
	enabled bool
}

// NewAnalysisCache creates a new analysis cache. A zero ttl disables it.
func NewAnalysisCache(ttl time.Duration) *AnalysisCache {
	if ttl <= 0 {
		logger.Info("Analysis cache disabled")
		return &AnalysisCache{enabled: false}
	}

	return &AnalysisCache{
		cache:   gocache.New(ttl, ttl*2),
		enabled: true,
	}
}

// Key derives the cache key for t and p
func Key(t models.AnalysisType, p models.UserProfile) string {
	// Struct fields marshal in declaration order, so equal profiles hash equally
	body, err := json.Marshal(p)
	if err != nil {
		return ""
	}

	h := sha256.New()
	h.Write([]byte(t))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached report for t and p
func (ac *AnalysisCache) Get(t models.AnalysisType, p models.UserProfile) (string, bool) {
	if !ac.enabled {
		return "", false
	}

	key := Key(t, p)
	if data, found := ac.cache.Get(key); found {
		if text, ok := data.(string); ok {
			metrics.CacheHits.WithLabelValues(analysisCacheName).Inc()
			logger.Debug("Analysis cache hit", zap.String("analysis_type", string(t)))
			return text, true
		}
		ac.cache.Delete(key)
	}

	metrics.CacheMisses.WithLabelValues(analysisCacheName).Inc()
	return "", false
}

// Set stores a report for t and p
func (ac *AnalysisCache) Set(t models.AnalysisType, p models.UserProfile, text string) {
	if !ac.enabled || text == "" {
		return
	}

	ac.cache.SetDefault(Key(t, p), text)
	metrics.CacheSize.WithLabelValues(analysisCacheName).Set(float64(ac.cache.ItemCount()))
}
