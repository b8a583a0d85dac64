package oidcgin

import (
	"github.com/gin-gonic/gin"
)

// Option defines a functional option for configuring the middleware
type Option func(*Middleware)

// WithErrorHandler sets a custom error handler for the middleware. The
// handler must write the response; the chain is aborted afterwards.
func WithErrorHandler(handler func(*gin.Context, error)) Option {
	return func(m *Middleware) {
		if handler != nil {
			m.errorHandler = handler
		}
	}
}

// WithClaimsKey sets the gin.Context key claims are stored under.
func WithClaimsKey(key string) Option {
	return func(m *Middleware) {
		if key != "" {
			m.contextKey = key
		}
	}
}
