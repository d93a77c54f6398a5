// Package errors defines custom error types for better error handling and debugging.
// StreamError provides context-aware error reporting with type classification.
package errors

import (
	stderrors "errors"
	"fmt"
)

// StreamError represents errors that occur while building catalogs or resolving streams
type StreamError struct {
	Type    string
	Message string
	Cause   error
}

func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *StreamError) Unwrap() error {
	return e.Cause
}

// Error type constants
const (
	ErrorTypeConfigurationInvalid = "CONFIGURATION_INVALID"
	ErrorTypeInvalidLink          = "INVALID_LINK"
	ErrorTypeProviderFailed       = "PROVIDER_FAILED"
	ErrorTypeEmptyResult          = "EMPTY_RESULT"
	ErrorTypeUnknownProvider      = "UNKNOWN_PROVIDER"
	ErrorTypeEventSourceFailed    = "EVENT_SOURCE_FAILED"
	ErrorTypeTimeout              = "TIMEOUT"
	ErrorTypeInvalidID            = "INVALID_ID"
)

// NewStreamError creates a new StreamError
func NewStreamError(errorType, message string, cause error) *StreamError {
	return &StreamError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// IsType reports whether err wraps a StreamError of the given type.
func IsType(err error, errorType string) bool {
	var se *StreamError
	if stderrors.As(err, &se) {
		return se.Type == errorType
	}
	return false
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeConfigurationInvalid, message, cause)
}

// NewInvalidLinkError creates an error for a link that cannot be parsed
func NewInvalidLinkError(link string, cause error) *StreamError {
	return NewStreamError(ErrorTypeInvalidLink, fmt.Sprintf("invalid link: %s", link), cause)
}

// NewProviderError creates an error for a failed provider attempt
func NewProviderError(provider, message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeProviderFailed, fmt.Sprintf("%s: %s", provider, message), cause)
}

// NewEmptyResultError creates an error for a provider that returned no URL
func NewEmptyResultError(provider string) *StreamError {
	return NewStreamError(ErrorTypeEmptyResult, fmt.Sprintf("%s returned no playable url", provider), nil)
}

// NewUnknownProviderError creates an error for an unregistered provider id
func NewUnknownProviderError(provider string) *StreamError {
	return NewStreamError(ErrorTypeUnknownProvider, fmt.Sprintf("unknown provider: %s", provider), nil)
}

// NewEventSourceError creates an error for event feed failures
func NewEventSourceError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeEventSourceFailed, message, cause)
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string) *StreamError {
	return NewStreamError(ErrorTypeTimeout, fmt.Sprintf("Operation timeout: %s", operation), nil)
}

// NewInvalidIDError creates an invalid ID error
func NewInvalidIDError(id string) *StreamError {
	return NewStreamError(ErrorTypeInvalidID, fmt.Sprintf("Invalid ID format: %s", id), nil)
}
