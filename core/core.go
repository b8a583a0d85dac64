package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/binkhq/go-oidc-bearer/validator"
)

const bearerScheme = "bearer"

// TokenValidator validates a raw token and returns its claims.
// *validator.Validator implements it.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (validator.Claims, error)
}

// HeaderSource is implemented by each host framework adapter to describe the
// request being authenticated.
type HeaderSource interface {
	// AuthorizationHeader returns the Authorization header value and whether
	// the request carried one.
	AuthorizationHeader() (string, bool)

	// RequiredScopes returns the scopes the target operation requires.
	RequiredScopes() []string

	// AuthDisabled reports whether the target operation opted out of
	// authentication.
	AuthDisabled() bool
}

// Authenticator parses Authorization headers, validates the bearer token and
// enforces required scopes. It holds no mutable state and is safe for
// concurrent use.
type Authenticator struct {
	validator TokenValidator
	logger    Logger
	tracer    trace.Tracer
}

// Authenticate checks authHeader, of the form "Bearer <token>", and returns
// the token's claims when it is valid and grants every scope in
// requiredScopes. An empty requiredScopes skips the scope check entirely.
//
// Every failure is an *AuthError.
func (a *Authenticator) Authenticate(ctx context.Context, authHeader string, requiredScopes []string) (validator.Claims, error) {
	return a.traced(ctx, func(ctx context.Context) (validator.Claims, error) {
		return a.authenticate(ctx, authHeader, requiredScopes)
	})
}

// traced runs fn inside the oidcbearer.Authenticate span and logs its outcome.
func (a *Authenticator) traced(ctx context.Context, fn func(context.Context) (validator.Claims, error)) (validator.Claims, error) {
	ctx, span := a.tracer.Start(ctx, "oidcbearer.Authenticate")
	defer span.End()

	start := time.Now()
	claims, err := fn(ctx)
	duration := time.Since(start)

	if err != nil {
		reason := ReasonOf(err)
		span.SetAttributes(attribute.String("auth.reason", string(reason)))
		span.SetStatus(codes.Error, err.Error())

		args := []any{"reason", reason, "duration", duration}
		if cause := errors.Unwrap(err); cause != nil {
			args = append(args, "error", cause)
		}
		a.logger.Warn("authentication failed", args...)

		return nil, err
	}

	a.logger.Debug("authentication succeeded", "duration", duration)

	return claims, nil
}

func (a *Authenticator) authenticate(ctx context.Context, authHeader string, requiredScopes []string) (validator.Claims, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 {
		return nil, NewAuthError(ReasonMalformedHeader, MessageMalformedHeader, nil)
	}

	if !strings.EqualFold(parts[0], bearerScheme) {
		return nil, NewAuthError(ReasonInvalidScheme, MessageInvalidScheme, nil)
	}

	claims, err := a.validator.ValidateToken(ctx, parts[1])
	if err != nil {
		return nil, NewAuthError(ReasonInvalidToken, MessageInvalidToken, err)
	}

	if len(requiredScopes) > 0 {
		if err := checkScopes(claims, requiredScopes); err != nil {
			return nil, err
		}
	}

	return claims, nil
}

// AuthenticateSource authenticates the request described by src.
//
// When src reports AuthDisabled it returns nil claims and a nil error without
// looking at the header. A request without an Authorization header fails
// with ReasonMissingHeader.
func (a *Authenticator) AuthenticateSource(ctx context.Context, src HeaderSource) (validator.Claims, error) {
	if src.AuthDisabled() {
		a.logger.Debug("authentication disabled for operation")
		return nil, nil
	}

	return a.traced(ctx, func(ctx context.Context) (validator.Claims, error) {
		header, ok := src.AuthorizationHeader()
		if !ok {
			return nil, NewAuthError(ReasonMissingHeader, MessageMissingHeader, nil)
		}
		return a.authenticate(ctx, header, src.RequiredScopes())
	})
}
