package oidcgrpc

import (
	"context"
	"strings"
)

// Option defines a functional option for configuring the gRPC adapter.
type Option func(*Middleware)

// WithErrorHandler sets a custom gRPC error handler. It receives the
// *core.AuthError and returns the error sent to the client.
func WithErrorHandler(handler func(ctx context.Context, err error) error) Option {
	return func(m *Middleware) {
		if handler != nil {
			m.errorHandler = handler
		}
	}
}

// WithExcludedMethods allows configuring a list of gRPC methods to serve
// without authentication.
func WithExcludedMethods(methods []string) Option {
	methodSet := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		methodSet[m] = struct{}{}
	}
	return func(m *Middleware) {
		m.exclusionChecker = func(method string) bool {
			_, ok := methodSet[method]
			return ok
		}
	}
}

// WithExclusionChecker allows configuring a custom exclusion checker for gRPC methods.
func WithExclusionChecker(checker func(string) bool) Option {
	return func(m *Middleware) {
		m.exclusionChecker = checker
	}
}

// WithMethodScopes sets the scopes each full method name requires. Methods
// not listed require a valid token and no particular scope.
func WithMethodScopes(scopes map[string][]string) Option {
	return func(m *Middleware) {
		for method, required := range scopes {
			m.methodScopes[method] = append([]string(nil), required...)
		}
	}
}

// WithMetadataKey reads the credential from a different metadata key.
func WithMetadataKey(key string) Option {
	return func(m *Middleware) {
		if key != "" {
			m.metadataKey = strings.ToLower(key)
		}
	}
}
