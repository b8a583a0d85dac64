package oidcecho

import (
	"github.com/labstack/echo/v4"
)

// Option is a function that configures the middleware
type Option func(*Middleware)

// WithErrorHandler sets a custom error handler. Its return value is returned
// from the middleware, so returning an *echo.HTTPError hands the response to
// Echo's HTTPErrorHandler.
func WithErrorHandler(handler func(echo.Context, error) error) Option {
	return func(m *Middleware) {
		if handler != nil {
			m.errorHandler = handler
		}
	}
}

// WithContextKey sets a custom context key to store claims
func WithContextKey(key string) Option {
	return func(m *Middleware) {
		if key != "" {
			m.contextKey = key
		}
	}
}
