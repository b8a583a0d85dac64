package oidcbearer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/validator"
)

// Middleware protects net/http handlers with an Authenticator.
type Middleware struct {
	auth                *core.Authenticator
	errorHandler        ErrorHandler
	headerExtractor     HeaderExtractor
	validateOnOptions   bool
	exclusionURLHandler ExclusionURLHandler
	logger              core.Logger
	metrics             Metrics
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should not be authenticated.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a Middleware around auth.
//
// Example:
//
//	registry, _ := core.NewRegistry()
//	auth, err := core.New(ctx, registry, cfg)
//	if err != nil {
//	    log.Fatalf("failed to reach identity provider: %v", err)
//	}
//
//	mw, err := oidcbearer.New(auth, oidcbearer.WithLogger(slog.Default()))
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
//
//	http.Handle("/orders", mw.Protect("orders.read")(ordersHandler))
func New(auth *core.Authenticator, opts ...Option) (*Middleware, error) {
	if auth == nil {
		return nil, ErrAuthenticatorNil
	}

	m := &Middleware{
		auth:              auth,
		errorHandler:      DefaultErrorHandler,
		headerExtractor:   AuthHeaderExtractor,
		validateOnOptions: true,
		metrics:           NoopMetrics{},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return m, nil
}

// GetClaims retrieves the claims of the authenticated request.
//
// Example:
//
//	claims, err := oidcbearer.GetClaims(r.Context())
//	if err != nil {
//	    http.Error(w, "failed to get claims", http.StatusInternalServerError)
//	    return
//	}
//	fmt.Println(claims.Subject())
func GetClaims(ctx context.Context) (validator.Claims, error) {
	return core.GetClaims(ctx)
}

// MustGetClaims retrieves claims from the context or panics.
// Use only when you are certain claims exist (e.g., after Protect has run).
func MustGetClaims(ctx context.Context) validator.Claims {
	claims, err := core.GetClaims(ctx)
	if err != nil {
		panic(err)
	}
	return claims
}

// HasClaims checks if claims exist in the context.
func HasClaims(ctx context.Context) bool {
	return core.HasClaims(ctx)
}

// Protect returns middleware that lets a request through only when it
// carries a valid bearer token granting every scope in scopes.
func (m *Middleware) Protect(scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			src := &requestSource{
				request:   r,
				extractor: m.headerExtractor,
				scopes:    scopes,
				disabled:  m.skip(r),
			}

			start := time.Now()
			claims, err := m.auth.AuthenticateSource(r.Context(), src)
			if src.disabled {
				next.ServeHTTP(w, r)
				return
			}
			m.metrics.ObserveAuthentication(string(core.ReasonOf(err)), time.Since(start))

			if err != nil {
				m.debug("rejecting request",
					"reason", core.ReasonOf(err),
					"method", r.Method,
					"path", r.URL.Path)
				if !errors.Is(err, core.ErrUnauthorized) {
					err = fmt.Errorf("error authenticating request: %w", err)
				}
				m.errorHandler(w, r, err)
				return
			}

			r = r.Clone(core.SetClaims(r.Context(), claims))
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) skip(r *http.Request) bool {
	if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
		m.debug("skipping authentication for excluded URL",
			"method", r.Method,
			"path", r.URL.Path)
		return true
	}
	if !m.validateOnOptions && r.Method == http.MethodOptions {
		m.debug("skipping authentication for OPTIONS request")
		return true
	}
	return false
}

func (m *Middleware) debug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
