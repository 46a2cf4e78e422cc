// Package profiling pushes continuous profiles to Pyroscope and labels the
// CPU time spent on each analysis type.
package profiling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/guindo/fireplan-api/config"
	"github.com/guindo/fireplan-api/pkg/logger"
	"go.uber.org/zap"
)

const (
	defaultAppName        = "fireplan-api"
	defaultUploadInterval = 15 * time.Second

	// AnalysisTypeLabel is the pprof label set by WithAnalysisType
	AnalysisTypeLabel = "analysis_type"
)

// Report generation is mostly waiting on the provider, so goroutine and
// allocation profiles matter more than mutex/block ones by default.
var defaultProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

var profileTypeMap = map[string][]pyroscope.ProfileType{
	"cpu":           {pyroscope.ProfileCPU},
	"alloc_space":   {pyroscope.ProfileAllocSpace},
	"alloc_objects": {pyroscope.ProfileAllocObjects},
	"inuse_space":   {pyroscope.ProfileInuseSpace},
	"goroutines":    {pyroscope.ProfileGoroutines},
	"mutex":         {pyroscope.ProfileMutexCount, pyroscope.ProfileMutexDuration},
	"block":         {pyroscope.ProfileBlockCount, pyroscope.ProfileBlockDuration},
}

// Service identifies this process in the profiling backend. Every non-empty
// field becomes a Pyroscope tag.
type Service struct {
	Name        string
	Namespace   string
	Version     string
	InstanceID  string
	Environment string
}

func (s Service) tags() map[string]string {
	tags := make(map[string]string, 5)
	for key, value := range map[string]string{
		"service_name":    s.Name,
		"namespace":       s.Namespace,
		"service_version": s.Version,
		"instance":        s.InstanceID,
		"environment":     s.Environment,
	} {
		if value = strings.TrimSpace(value); value != "" {
			tags[key] = value
		}
	}
	return tags
}

// InitProfiler starts pushing profiles when cfg.Enabled is set.
//
//   - cfg.AppName names the application (default "fireplan-api")
//   - cfg.SampleTypes is a comma list of cpu, alloc_space, alloc_objects,
//     inuse_space, goroutines, mutex, block; empty means the defaults above
//   - cfg.UploadIntervalSeconds defaults to 15
//
// The returned func stops the profiler and is safe to defer when disabled.
func InitProfiler(cfg config.ProfilingConfig, svc Service) (func(), error) {
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return func() {}, nil
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("profiling endpoint is required when profiling is enabled")
	}

	uploadRate := time.Duration(cfg.UploadIntervalSeconds) * time.Second
	if uploadRate <= 0 {
		uploadRate = defaultUploadInterval
	}

	profileTypes, err := parseProfileTypes(cfg.SampleTypes)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.AppName)
	if appName == "" {
		appName = defaultAppName
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   endpoint,
		Tags:            svc.tags(),
		UploadRate:      uploadRate,
		ProfileTypes:    profileTypes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start profiler: %w", err)
	}

	logger.Info("Continuous profiling initialized",
		zap.String("application_name", appName),
		zap.String("endpoint", endpoint),
		zap.Int("profile_types", len(profileTypes)),
		zap.Duration("upload_rate", uploadRate),
	)

	return func() {
		if stopErr := profiler.Stop(); stopErr != nil {
			logger.Error("Failed to stop profiler", zap.Error(stopErr))
		}
	}, nil
}

// WithAnalysisType runs fn with the analysis_type pprof label so CPU spent on
// prompt building and response handling can be split per report. Labels are
// plain pprof labels and cost nothing when no profiler is running.
func WithAnalysisType(ctx context.Context, analysisType string, fn func(context.Context)) {
	pyroscope.TagWrapper(ctx, pyroscope.Labels(AnalysisTypeLabel, analysisType), fn)
}

func parseProfileTypes(value string) ([]pyroscope.ProfileType, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultProfileTypes, nil
	}

	var types []pyroscope.ProfileType
	seen := make(map[pyroscope.ProfileType]bool)

	for _, raw := range strings.Split(value, ",") {
		key := strings.ToLower(strings.TrimSpace(raw))
		if key == "" {
			continue
		}
		mapped, ok := profileTypeMap[key]
		if !ok {
			return nil, fmt.Errorf("unsupported O11Y_PROFILING_SAMPLE_TYPES value: %q", key)
		}
		for _, t := range mapped {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}

	if len(types) == 0 {
		return defaultProfileTypes, nil
	}
	return types, nil
}
