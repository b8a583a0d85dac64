package core

import (
	"context"

	"github.com/binkhq/go-oidc-bearer/validator"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	claimsKey contextKey = iota
)

// GetClaims retrieves the claims stored by an adapter after a successful
// authentication.
func GetClaims(ctx context.Context) (validator.Claims, error) {
	claims, ok := ctx.Value(claimsKey).(validator.Claims)
	if !ok || claims == nil {
		return nil, ErrClaimsNotFound
	}
	return claims, nil
}

// SetClaims stores claims in the context.
// This is a helper function for adapters to set claims after validation.
func SetClaims(ctx context.Context, claims validator.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// HasClaims checks if claims exist in the context without retrieving them.
func HasClaims(ctx context.Context) bool {
	_, err := GetClaims(ctx)
	return err == nil
}
