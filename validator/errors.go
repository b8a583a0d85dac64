package validator

import "errors"

// ErrTokenInvalid is matched by every *ValidationError through errors.Is.
var ErrTokenInvalid = errors.New("jwt invalid")

// ValidationError reports why a token was rejected.
// It provides structured error information that can be used for
// logging and metrics. It is not meant to be shown to the token's bearer.
type ValidationError struct {
	// Code is a machine-readable error code (e.g., "token_expired", "invalid_signature")
	Code string

	// Message is a human-readable error message
	Message string

	// Details contains the underlying error
	Details error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Details
}

// Is allows the error to be compared with ErrTokenInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrTokenInvalid
}

// Validation error codes.
const (
	ErrorCodeTokenMalformed   = "token_malformed"
	ErrorCodeInvalidSignature = "invalid_signature"
	ErrorCodeInvalidIssuer    = "invalid_issuer"
	ErrorCodeInvalidAudience  = "invalid_audience"
	ErrorCodeTokenExpired     = "token_expired"
	ErrorCodeInvalidClaims    = "invalid_claims"
)

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code, message string, details error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
