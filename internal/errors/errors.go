package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeUpstream      = "UPSTREAM_ERROR"
	ErrCodeNotConfigured = "NOT_CONFIGURED"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "UPSTREAM_ERROR", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewUpstreamError wraps a failed or unusable LLM gateway response.
func NewUpstreamError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeUpstream,
		Message: message,
		Status:  502,
		Err:     err,
	}
}

// NewNotConfiguredError reports a missing server-side setting such as an API key.
func NewNotConfiguredError(what string) *AppError {
	return &AppError{
		Code:    ErrCodeNotConfigured,
		Message: fmt.Sprintf("%s not configured", what),
		Status:  500,
	}
}

// Request layer failure kinds. Match them with errors.Is.
var (
	ErrLookup     = stderrors.New("word lookup failed")
	ErrGeneration = stderrors.New("question generation failed")
	ErrChat       = stderrors.New("chat request failed")
)

// RequestError is a transient, retryable failure of a request-layer call:
// transport failure, non-2xx status, malformed body or an upstream-reported error.
type RequestError struct {
	Op      string // "lookup", "generate", "chat"
	Kind    error  // one of ErrLookup, ErrGeneration, ErrChat
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrLookup) match a RequestError of that kind.
func (e *RequestError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

// NewLookupError creates a RequestError of kind ErrLookup.
func NewLookupError(message string, err error) *RequestError {
	return &RequestError{Op: "lookup", Kind: ErrLookup, Message: message, Err: err}
}

// NewGenerationError creates a RequestError of kind ErrGeneration.
func NewGenerationError(message string, err error) *RequestError {
	return &RequestError{Op: "generate", Kind: ErrGeneration, Message: message, Err: err}
}

// NewChatError creates a RequestError of kind ErrChat.
func NewChatError(message string, err error) *RequestError {
	return &RequestError{Op: "chat", Kind: ErrChat, Message: message, Err: err}
}

// ConfigurationError marks a question that lacks the fields its type requires.
// It is not retryable; the question should be skipped.
type ConfigurationError struct {
	QuestionID int
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("question %d misconfigured: %s", e.QuestionID, e.Reason)
}

// PersistenceError describes a failed read or write of the local store.
// Callers log it and fall back to in-memory defaults.
type PersistenceError struct {
	Op  string // "read", "write", "decode", "encode"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }
