package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/guindo/fireplan-api/pkg/circuitbreaker"
	"github.com/guindo/fireplan-api/pkg/httpclient"
	"github.com/guindo/fireplan-api/pkg/logger"
	"github.com/guindo/fireplan-api/pkg/metrics"
	"github.com/guindo/fireplan-api/pkg/retry"
	"github.com/guindo/fireplan-api/pkg/tracing"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 4096
	DefaultTimeout     = 60 * time.Second
)

// Generator produces a completion for a user prompt under a system instruction.
// label names the analysis for logs and metrics.
type Generator interface {
	Generate(ctx context.Context, prompt, system, label string) (string, error)
}

// Config holds chat completion settings
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	// Timeout bounds one Generate call including its retry
	Timeout time.Duration
	// MaxRetries is 0 or 1
	MaxRetries int
	// RetryDelay is the base backoff before the retry
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// Client talks to an OpenAI-compatible chat completion endpoint (Groq by default)
type Client struct {
	api     *openai.Client
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	retry   retry.Config
}

var _ Generator = (*Client)(nil)

// NewClient creates a new chat completion client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.MaxRetries > 1 {
		cfg.MaxRetries = 1
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = httpclient.NewStandardClient(httpclient.DefaultConfig())
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = cfg.BaseURL
	apiCfg.HTTPClient = cfg.HTTPClient

	retryCfg := retry.LLMConfig(cfg.MaxRetries)
	if cfg.RetryDelay > 0 {
		retryCfg.InitialDelay = cfg.RetryDelay
	}
	retryCfg.RetryableErrors = isTransient

	breakerCfg := circuitbreaker.DefaultConfig("llm")
	breakerCfg.IsSuccessful = breakerSuccess

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		cfg:     cfg,
		breaker: circuitbreaker.NewCircuitBreaker(breakerCfg),
		retry:   retryCfg,
	}
}

// Model returns the model name sent with every request
func (c *Client) Model() string {
	return c.cfg.Model
}

// Generate sends one chat completion and returns the first choice's content.
// Every failure, including an empty completion, is a *ProviderError.
func (c *Client) Generate(ctx context.Context, prompt, system, label string) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "llm.generate",
		attribute.String("llm.label", label),
		attribute.String("llm.model", c.cfg.Model))

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	logger.Info("AI request",
		zap.String("label", label),
		zap.String("model", c.cfg.Model))

	content, err := retry.DoWithResult(ctx, c.retry, "llm."+label, func() (string, error) {
		return circuitbreaker.Execute(c.breaker, func() (string, error) {
			return c.complete(ctx, prompt, system, label)
		})
	})

	duration := metrics.MeasureDuration(start)
	if err != nil {
		perr := newProviderError(label, circuitbreaker.FormatError("llm", err))
		metrics.LLMRequestDuration.WithLabelValues(label, "error").Observe(duration)
		metrics.LLMRequestTotal.WithLabelValues(label, "error").Inc()
		logger.LogAPICall("llm", label, "error", duration,
			zap.String("model", c.cfg.Model),
			zap.Int("http_status", perr.StatusCode),
			zap.Error(perr))
		tracing.EndSpan(span, perr)
		return "", perr
	}

	metrics.LLMRequestDuration.WithLabelValues(label, "success").Observe(duration)
	metrics.LLMRequestTotal.WithLabelValues(label, "success").Inc()
	tracing.EndSpan(span, nil)
	return content, nil
}

func (c *Client) complete(ctx context.Context, prompt, system, label string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	metrics.LLMTokensTotal.WithLabelValues(label, c.cfg.Model).Add(float64(resp.Usage.TotalTokens))
	logger.Info("AI response",
		zap.String("label", label),
		zap.String("model", c.cfg.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return resp.Choices[0].Message.Content, nil
}

// isTransient reports whether err is worth one more attempt:
// transport failures and HTTP 408, 429 or 5xx.
func isTransient(err error) bool {
	if err == nil || !retry.IsRetryable(err) {
		return false
	}
	if errors.Is(err, ErrEmptyCompletion) || circuitbreaker.IsBreakerError(err) {
		return false
	}

	if status := statusCode(err); status != 0 {
		return status == http.StatusRequestTimeout ||
			status == http.StatusTooManyRequests ||
			status >= http.StatusInternalServerError
	}

	// No HTTP status means the request never completed
	return true
}

// breakerSuccess decides what the breaker counts against the provider.
// A call that ran out its deadline is a provider failure; caller
// cancellation and permanent (4xx) errors are not.
func breakerSuccess(err error) bool {
	switch {
	case err == nil, errors.Is(err, context.Canceled):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return !isTransient(err)
}

// statusCode extracts the provider's HTTP status from err, or 0
func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
