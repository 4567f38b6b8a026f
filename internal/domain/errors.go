package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeNotConfigured    = "NOT_CONFIGURED"
	ErrCodeUpstreamFailure  = "UPSTREAM_FAILURE"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
)

// Validation errors
var (
	ErrEmptySegment  = NewDomainError(ErrCodeValidation, "segment content is empty")
	ErrMissingSource = NewDomainError(ErrCodeValidation, "segment has no source")
	ErrEmptyPrompt   = NewDomainError(ErrCodeValidation, "prompt is required")
	ErrEmptyTestCase = NewDomainError(ErrCodeValidation, "test_case is required")
	ErrNoHTMLFile    = NewDomainError(ErrCodeValidation, "html_file is required")
)

// Not found errors
var (
	// ErrHTMLArtifactNotFound is returned when script generation is requested
	// before any HTML page has been ingested.
	ErrHTMLArtifactNotFound = NewDomainError(ErrCodeNotFound, "checkout.html not found, run ingest first")
)

// Configuration errors
var (
	ErrGenerationNotConfigured = NewDomainError(ErrCodeNotConfigured, "generation is not configured: GOOGLE_API_KEY required")
)

// NewUpstreamError wraps an error from the embedding model, the vector store
// or the LLM. The upstream message is carried verbatim; no retry is
// performed.
func NewUpstreamError(operation string, err error) *DomainError {
	return NewDomainErrorWithCause(ErrCodeUpstreamFailure, operation+" failed", err)
}
