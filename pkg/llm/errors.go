package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderFailure is wrapped by every error Generate returns
	ErrProviderFailure = errors.New("ai provider failure")

	// ErrEmptyCompletion means the provider answered without any content
	ErrEmptyCompletion = errors.New("empty response from AI")
)

// ProviderError describes a failed completion for one analysis
type ProviderError struct {
	Label      string
	StatusCode int // provider HTTP status, 0 when the request never completed
	Message    string
	Err        error
}

func newProviderError(label string, err error) *ProviderError {
	return &ProviderError{
		Label:      label,
		StatusCode: statusCode(err),
		Message:    err.Error(),
		Err:        err,
	}
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s analysis failed: %s", e.Label, e.Message)
}

func (e *ProviderError) Unwrap() []error {
	return []error{ErrProviderFailure, e.Err}
}
