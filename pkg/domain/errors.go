package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyPrompt is returned when a prompt is empty or whitespace only.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ErrUnknownAction is returned when an intent does not map to any handler.
var ErrUnknownAction = errors.New("unknown action")

var errUnspecified = errors.New("unspecified failure")

// ConfigError reports a missing or invalid setting. It is fatal at startup.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// ResolutionError reports that a prompt could not be classified.
// The caller degrades to the unknown intent.
type ResolutionError struct {
	Reason string
	Err    error
}

func (e *ResolutionError) Error() string {
	if e.Err == nil {
		return "resolve intent: " + e.Reason
	}
	return fmt.Sprintf("resolve intent: %s: %v", e.Reason, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ValidationError reports a parameter that is missing, empty or out of range.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Param)
}

// RemoteAPIError reports a non-2xx response from the task API.
// Body is kept verbatim so contract changes upstream can be diagnosed.
type RemoteAPIError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("%s: %d - %s", e.Op, e.StatusCode, e.Body)
}

// NetworkError reports a timeout or connection failure on a remote call.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
