package core

import "errors"

// Sentinel errors.
var (
	// ErrUnauthorized is matched by every *AuthError through errors.Is.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrClaimsNotFound is returned when claims cannot be retrieved from context.
	ErrClaimsNotFound = errors.New("claims not found in context")
)

// Reason discriminates why a request was not authenticated.
type Reason string

// Reasons reported by AuthError.
const (
	ReasonMissingHeader     Reason = "missing_header"
	ReasonMalformedHeader   Reason = "malformed_header"
	ReasonInvalidScheme     Reason = "invalid_scheme"
	ReasonInvalidToken      Reason = "invalid_token"
	ReasonInsufficientScope Reason = "insufficient_scope"
)

// Caller-safe messages.
const (
	MessageMissingHeader   = "Authorization header is required but was not provided"
	MessageMalformedHeader = "Authorization header must have two parts separated by whitespace"
	MessageInvalidScheme   = `Authorization header must begin with "Bearer"`
	MessageInvalidToken    = "JWT failed validation"
)

// AuthError is the only error returned by an Authenticator.
//
// Message is safe to send back to the caller as the body of an unauthorized
// response. The underlying cause, if any, is reachable through errors.Unwrap
// for logging but never appears in Error().
type AuthError struct {
	// Reason is a machine-readable failure reason.
	Reason Reason

	// Message is a human-readable, caller-safe message.
	Message string

	// Missing lists the required scopes the token does not grant.
	// Only set for ReasonInsufficientScope.
	Missing []string

	// Granted lists the scopes the token grants.
	// Only set for ReasonInsufficientScope.
	Granted []string

	cause error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *AuthError) Unwrap() error {
	return e.cause
}

// Is allows the error to be compared with ErrUnauthorized.
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// NewAuthError creates a new AuthError with the given reason and message.
func NewAuthError(reason Reason, message string, cause error) *AuthError {
	return &AuthError{
		Reason:  reason,
		Message: message,
		cause:   cause,
	}
}

// ReasonOf returns the Reason carried by err, or an empty Reason when err is
// not an *AuthError.
func ReasonOf(err error) Reason {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Reason
	}
	return ""
}
