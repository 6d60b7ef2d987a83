package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling in the
// handler layer without a growing switch over concrete types.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors for the analysis pipeline and persistence flows.
// Match with errors.Is().
var (
	// ErrValidation indicates a required field was missing or a generative
	// output carried only placeholder data.
	ErrValidation = errors.New("validation failed")

	// ErrModel indicates a generative capability returned no usable output
	// or was unreachable.
	ErrModel = errors.New("model failure")

	// ErrIntegrity indicates an ownership mismatch on a mutating operation.
	ErrIntegrity = errors.New("ownership mismatch")

	// ErrStorage indicates an object-store upload or delete failed.
	ErrStorage = errors.New("storage failure")

	// ErrPartialWrite indicates bytes were stored but the record write
	// failed, leaving an orphaned object behind.
	ErrPartialWrite = errors.New("partial write")

	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates authentication failure.
	ErrUnauthorized = errors.New("unauthorized")
)

// Stage failure types surfaced by the pipeline. Each wraps ErrModel so
// callers can match either the broad class or the specific stage.
type (
	// RectifyFailedError indicates the vision capability returned no
	// rectified image. There is no fallback to the uncropped input.
	RectifyFailedError struct {
		Reason string
	}

	// ExtractFailedError indicates text extraction produced no output.
	ExtractFailedError struct {
		Reason string
	}
)

func (e *RectifyFailedError) Error() string {
	if e.Reason == "" {
		return "document rectification failed"
	}
	return "document rectification failed: " + e.Reason
}

func (e *ExtractFailedError) Error() string {
	if e.Reason == "" {
		return "text extraction failed"
	}
	return "text extraction failed: " + e.Reason
}

// Is allows errors.Is() to match stage failures against ErrModel.
func (e *RectifyFailedError) Is(target error) bool { return target == ErrModel }
func (e *ExtractFailedError) Is(target error) bool { return target == ErrModel }

func (e *RectifyFailedError) StatusCode() int { return http.StatusBadGateway }
func (e *ExtractFailedError) StatusCode() int { return http.StatusBadGateway }
