package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
//
//nolint:govet // Field alignment optimization would reduce readability
type Config struct {
	Server        ServerConfig
	Auth          AuthConfig
	AI            AIConfig
	Database      DatabaseConfig
	Cache         CacheConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
	Profiling     ProfilingConfig
}

type ServerConfig struct {
	Port           string
	GinMode        string
	Environment    string
	AllowedOrigins []string
	MaxBodyBytes   int64
	// TrustedProxies are the IPs/CIDRs whose X-Forwarded-For is believed.
	// Empty means the socket peer is always the client.
	TrustedProxies []string
}

type AuthConfig struct {
	// APISecretKey is the shared secret expected in X-API-Key. Empty disables auth.
	APISecretKey string
}

type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	MaxRetries  int
}

type DatabaseConfig struct {
	URL        string
	MaxConns   int32
	MinConns   int32
	CACertPath string
}

type CacheConfig struct {
	AnalysisTTL time.Duration // zero disables the analysis cache
}

type LoggingConfig struct {
	Level string
	Dir   string
}

type ObservabilityConfig struct {
	ExporterEndpoint  string
	ServiceName       string
	ServiceNamespace  string
	ServiceVersion    string
	ServiceInstanceID string
}

type ProfilingConfig struct {
	Enabled               bool
	Endpoint              string
	AppName               string
	SampleTypes           string
	UploadIntervalSeconds int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("MAX_BODY_BYTES", 256*1024)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("GROQ_MODEL", "llama-3.3-70b-versatile")
	v.SetDefault("LLM_TEMPERATURE", 0.7)
	v.SetDefault("LLM_MAX_TOKENS", 4096)
	v.SetDefault("AI_TIMEOUT_SECONDS", 60)
	v.SetDefault("AI_MAX_RETRIES", 1)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("ANALYSIS_CACHE_TTL", 3600) // seconds
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DIR", "")
	v.SetDefault("O11Y_EXPORTER_ENDPOINT", "")
	v.SetDefault("O11Y_BE_SERVICE_NAME", "fireplan-api")
	v.SetDefault("O11Y_SERVICE_NAMESPACE", "fireplan")
	v.SetDefault("O11Y_BE_SERVICE_VERSION", "1.0.0")
	v.SetDefault("O11Y_PROFILING_ENABLED", false)
	v.SetDefault("O11Y_PROFILING_APP_NAME", "fireplan-api")
	v.SetDefault("O11Y_PROFILING_SAMPLE_TYPES", "cpu,alloc_space,goroutines")
	v.SetDefault("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS", 15)

	// Automatically read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read from .env file if it exists
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	_ = v.ReadInConfig() //nolint:errcheck // Ignore error if .env file doesn't exist

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			GinMode:        v.GetString("GIN_MODE"),
			Environment:    v.GetString("ENVIRONMENT"),
			AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
			MaxBodyBytes:   v.GetInt64("MAX_BODY_BYTES"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Auth: AuthConfig{
			APISecretKey: v.GetString("API_SECRET_KEY"),
		},
		AI: AIConfig{
			APIKey:      v.GetString("GROQ_API_KEY"),
			BaseURL:     v.GetString("GROQ_BASE_URL"),
			Model:       v.GetString("GROQ_MODEL"),
			Temperature: float32(v.GetFloat64("LLM_TEMPERATURE")),
			MaxTokens:   v.GetInt("LLM_MAX_TOKENS"),
			Timeout:     time.Duration(v.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
			MaxRetries:  v.GetInt("AI_MAX_RETRIES"),
		},
		Database: DatabaseConfig{
			URL:        v.GetString("DATABASE_URL"),
			MaxConns:   v.GetInt32("DB_MAX_CONNS"),
			MinConns:   v.GetInt32("DB_MIN_CONNS"),
			CACertPath: v.GetString("DATABASE_CA_CERT"),
		},
		Cache: CacheConfig{
			AnalysisTTL: time.Duration(v.GetInt("ANALYSIS_CACHE_TTL")) * time.Second,
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
			Dir:   v.GetString("LOG_DIR"),
		},
		Observability: ObservabilityConfig{
			ExporterEndpoint:  v.GetString("O11Y_EXPORTER_ENDPOINT"),
			ServiceName:       v.GetString("O11Y_BE_SERVICE_NAME"),
			ServiceNamespace:  v.GetString("O11Y_SERVICE_NAMESPACE"),
			ServiceVersion:    v.GetString("O11Y_BE_SERVICE_VERSION"),
			ServiceInstanceID: v.GetString("SERVICE_INSTANCE_ID"),
		},
		Profiling: ProfilingConfig{
			Enabled:               v.GetBool("O11Y_PROFILING_ENABLED"),
			Endpoint:              v.GetString("O11Y_PROFILING_ENDPOINT"),
			AppName:               v.GetString("O11Y_PROFILING_APP_NAME"),
			SampleTypes:           v.GetString("O11Y_PROFILING_SAMPLE_TYPES"),
			UploadIntervalSeconds: v.GetInt("O11Y_PROFILING_UPLOAD_INTERVAL_SECONDS"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList parses a comma-separated env value, dropping blanks
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.IsProduction() {
		if c.Auth.APISecretKey == "" {
			return fmt.Errorf("API_SECRET_KEY must be set in production environment")
		}
		if c.AI.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY must be set in production environment")
		}
	}

	if c.AI.BaseURL == "" {
		return fmt.Errorf("GROQ_BASE_URL is required")
	}
	if c.AI.Model == "" {
		return fmt.Errorf("GROQ_MODEL is required")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT_SECONDS must be positive")
	}
	if c.AI.MaxRetries < 0 || c.AI.MaxRetries > 1 {
		return fmt.Errorf("AI_MAX_RETRIES must be 0 or 1")
	}
	if c.Cache.AnalysisTTL < 0 {
		return fmt.Errorf("ANALYSIS_CACHE_TTL must not be negative")
	}

	for _, proxy := range c.Server.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", proxy)
			}
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		return fmt.Errorf("O11Y_PROFILING_ENDPOINT is required when profiling is enabled")
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development" || c.Server.GinMode == "debug"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// HistoryEnabled reports whether analysis history persistence is configured
func (c *Config) HistoryEnabled() bool {
	return c.Database.URL != ""
}
