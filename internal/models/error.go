package models

import "errors"

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// Client-side validation: rejected before any storage call
	ErrValidationFailed = "VALIDATION_FAILED"

	// Any failed remote call (database, object storage); surfaced verbatim
	ErrBackendFailure = "BACKEND_ERROR"

	// Delete blocked by dependent records
	ErrReferentialConflict = "REFERENTIAL_CONFLICT"

	ErrNotFound     = "NOT_FOUND"
	ErrConflict     = "CONFLICT"
	ErrUnauthorized = "UNAUTHORIZED"
	ErrForbidden    = "FORBIDDEN"

	// Auth errors (maintain RFC 6749 compatibility on the token endpoint)
	ErrInvalidCredentials   = "invalid_credentials"
	ErrEmailNotConfirmed    = "email_not_confirmed"
	ErrInvalidClient        = "invalid_client"
	ErrUnsupportedGrantType = "unsupported_grant_type"
)

// DomainError carries an error-taxonomy code alongside the message so
// controllers can map service failures to HTTP statuses.
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewValidationError(message string) *DomainError {
	return &DomainError{Code: ErrValidationFailed, Message: message}
}

func NewBackendError(message string, cause error) *DomainError {
	return &DomainError{Code: ErrBackendFailure, Message: message, Cause: cause}
}

func NewReferentialConflictError(message string) *DomainError {
	return &DomainError{Code: ErrReferentialConflict, Message: message}
}

func NewNotFoundError(message string) *DomainError {
	return &DomainError{Code: ErrNotFound, Message: message}
}

func NewConflictError(message string) *DomainError {
	return &DomainError{Code: ErrConflict, Message: message}
}

func NewAuthError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// CodeOf extracts the taxonomy code from an error, defaulting to a backend
// failure for anything untyped.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrBackendFailure
}

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	apiErr := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		apiErr.Details = details[0]
	}
	return apiErr
}
