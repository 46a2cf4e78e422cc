package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Config holds outbound HTTP client settings
type Config struct {
	// Timeout bounds the whole exchange including reading the body.
	// Zero leaves the bound to the caller's context.
	Timeout             time.Duration
	DialTimeout         time.Duration
	MaxIdleConnsPerHost int
}

// DefaultConfig returns settings suited to a handful of long-running API calls
func DefaultConfig() Config {
	return Config{
		Timeout:             0,
		DialTimeout:         10 * time.Second,
		MaxIdleConnsPerHost: 10,
	}
}

// NewStandardClient creates an *http.Client with its own pooled transport
func NewStandardClient(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
}
