// Package errors defines typed errors for the resolution pipeline.
package errors

import "fmt"

// StreamError classifies failures during stream resolution so handlers can
// log them uniformly while returning empty results to the player.
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
	ErrorTypeAPIKeyMissing       = "API_KEY_MISSING"
	ErrorTypeScheduleFetchFailed = "SCHEDULE_FETCH_FAILED"
	ErrorTypeTorrentSearchFailed = "TORRENT_SEARCH_FAILED"
	ErrorTypeUnlockFailed        = "UNLOCK_FAILED"
	ErrorTypeInvalidID           = "INVALID_ID"
)

// NewStreamError creates a new StreamError.
func NewStreamError(errorType, message string, cause error) *StreamError {
	return &StreamError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NewAPIKeyMissingError reports a missing credential for a service.
func NewAPIKeyMissingError(service string) *StreamError {
	return NewStreamError(ErrorTypeAPIKeyMissing, fmt.Sprintf("API key missing for %s", service), nil)
}

// NewScheduleFetchError reports a failed schedule source call.
func NewScheduleFetchError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeScheduleFetchFailed, message, cause)
}

// NewTorrentSearchError reports a failed torrent index query.
func NewTorrentSearchError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeTorrentSearchFailed, message, cause)
}

// NewUnlockError reports a failed debrid unlock attempt.
func NewUnlockError(message string, cause error) *StreamError {
	return NewStreamError(ErrorTypeUnlockFailed, message, cause)
}

// NewInvalidIDError reports a malformed composite identifier.
func NewInvalidIDError(id string) *StreamError {
	return NewStreamError(ErrorTypeInvalidID, fmt.Sprintf("invalid ID format: %s", id), nil)
}
