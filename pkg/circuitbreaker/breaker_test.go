package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_PassesResult(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig("test"))

	got, err := Execute(cb, func() (string, error) { return "ok", nil })

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}

func TestExecute_OpensAfterFailures(t *testing.T) {
	cb := NewCircuitBreaker(DefaultConfig("test"))
	boom := errors.New("boom")

	for i := 0; i < 5; i++ {
		_, err := Execute(cb, func() (string, error) { return "", boom })
		assert.ErrorIs(t, err, boom)
	}

	assert.Equal(t, gobreaker.StateOpen, cb.State())

	called := false
	_, err := Execute(cb, func() (string, error) {
		called = true
		return "ok", nil
	})
	assert.False(t, called)
	assert.True(t, IsBreakerError(err))
	assert.Contains(t, FormatError("llm", err).Error(), "circuit breaker 'llm' is open")
}

func TestIsSuccessful_IgnoredErrorsDoNotTrip(t *testing.T) {
	permanent := errors.New("bad request")
	cfg := DefaultConfig("test")
	cfg.IsSuccessful = func(err error) bool { return err == nil || errors.Is(err, permanent) }
	cb := NewCircuitBreaker(cfg)

	for i := 0; i < 10; i++ {
		_, _ = Execute(cb, func() (int, error) { return 0, permanent })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestFormatError(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, FormatError("llm", plain))

	err := FormatError("llm", gobreaker.ErrTooManyRequests)
	assert.ErrorIs(t, err, gobreaker.ErrTooManyRequests)
	assert.Contains(t, err.Error(), "too many requests")
	assert.True(t, IsBreakerError(err))
	assert.False(t, IsBreakerError(plain))
}
