package oidcbearer

import (
	"errors"
	"net/http"

	"github.com/binkhq/go-oidc-bearer/core"
)

// Option configures the Middleware.
// Returns error for validation failures.
type Option func(*Middleware) error

// WithValidateOnOptions sets whether OPTIONS requests should be
// authenticated.
//
// Default: true (OPTIONS requests are authenticated)
func WithValidateOnOptions(value bool) Option {
	return func(m *Middleware) error {
		m.validateOnOptions = value
		return nil
	}
}

// WithErrorHandler sets the handler called when a request is not
// authenticated. See the ErrorHandler type for more information.
//
// Default: DefaultErrorHandler
func WithErrorHandler(h ErrorHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrErrorHandlerNil
		}
		m.errorHandler = h
		return nil
	}
}

// WithHeaderExtractor sets the function that reads the credential header.
//
// Default: AuthHeaderExtractor
func WithHeaderExtractor(e HeaderExtractor) Option {
	return func(m *Middleware) error {
		if e == nil {
			return ErrHeaderExtractorNil
		}
		m.headerExtractor = e
		return nil
	}
}

// WithExclusionURLs configures URLs that are served without authentication.
// URLs can be full URLs or just paths.
func WithExclusionURLs(exclusions []string) Option {
	return func(m *Middleware) error {
		if len(exclusions) == 0 {
			return ErrExclusionURLsEmpty
		}
		m.exclusionURLHandler = func(r *http.Request) bool {
			requestFullURL := r.URL.String()
			requestPath := r.URL.Path

			for _, exclusion := range exclusions {
				if requestFullURL == exclusion || requestPath == exclusion {
					return true
				}
			}
			return false
		}
		return nil
	}
}

// WithExclusionURLHandler sets a function deciding which requests are served
// without authentication. It replaces WithExclusionURLs.
func WithExclusionURLHandler(h ExclusionURLHandler) Option {
	return func(m *Middleware) error {
		if h == nil {
			return ErrExclusionURLHandlerNil
		}
		m.exclusionURLHandler = h
		return nil
	}
}

// WithLogger sets an optional logger for the middleware. Authentication
// itself is logged by the core.Authenticator's own logger.
//
// Example:
//
//	mw, err := oidcbearer.New(auth,
//	    oidcbearer.WithLogger(oidcbearer.NewZapLogger(zapLogger)),
//	)
func WithLogger(logger core.Logger) Option {
	return func(m *Middleware) error {
		if logger == nil {
			return ErrLoggerNil
		}
		m.logger = logger
		return nil
	}
}

// WithMetrics sets where authentication outcomes are recorded.
//
// Example:
//
//	metrics, err := oidcbearer.NewPrometheusMetrics(prometheus.DefaultRegisterer)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	mw, err := oidcbearer.New(auth, oidcbearer.WithMetrics(metrics))
func WithMetrics(metrics Metrics) Option {
	return func(m *Middleware) error {
		if metrics == nil {
			return ErrMetricsNil
		}
		m.metrics = metrics
		return nil
	}
}

// Sentinel errors for configuration validation
var (
	ErrAuthenticatorNil       = errors.New("authenticator cannot be nil")
	ErrErrorHandlerNil        = errors.New("errorHandler cannot be nil")
	ErrHeaderExtractorNil     = errors.New("headerExtractor cannot be nil")
	ErrExclusionURLsEmpty     = errors.New("exclusion URLs list cannot be empty")
	ErrExclusionURLHandlerNil = errors.New("exclusion URL handler cannot be nil")
	ErrLoggerNil              = errors.New("logger cannot be nil")
	ErrMetricsNil             = errors.New("metrics cannot be nil")
)
