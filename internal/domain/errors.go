package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAPIKeyNotConfigured is returned when no Steam Web API key is set.
	ErrAPIKeyNotConfigured = errors.New("Steam API key not configured")

	// ErrMalformedRequest is returned for request bodies that are not valid JSON.
	ErrMalformedRequest = errors.New("invalid JSON in request body")
)

// UpstreamError is a failed call to a load-bearing upstream endpoint.
// StatusCode is 0 for network errors and timeouts.
type UpstreamError struct {
	Call       string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API returned %d", e.Call, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s API request failed: %v", e.Call, e.Err)
	}
	return fmt.Sprintf("%s API request failed", e.Call)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
