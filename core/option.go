package core

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/binkhq/go-oidc-bearer"

// Option is a function that configures the Authenticator.
// Options return errors to enable validation during construction.
type Option func(*Authenticator) error

// New creates an Authenticator for cfg, taking the key set and validator from
// registry. The first Authenticator for a configuration downloads the
// provider's discovery document and key set; a download failure is returned
// and nothing is cached.
//
// Example:
//
//	registry, err := core.NewRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	auth, err := core.New(ctx, registry, core.ProviderConfig{
//	    BaseURL:  "https://login.microsoftonline.com/{tenant}/v2.0",
//	    Issuer:   "https://sts.windows.net/{tenant}/",
//	    Audience: "api://my-app",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
func New(ctx context.Context, registry *Registry, cfg ProviderConfig, opts ...Option) (*Authenticator, error) {
	if registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	entry, err := registry.Get(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return NewFromValidator(entry.Validator, opts...)
}

// NewFromValidator creates an Authenticator over an existing TokenValidator.
func NewFromValidator(v TokenValidator, opts ...Option) (*Authenticator, error) {
	if v == nil {
		return nil, errors.New("validator cannot be nil")
	}

	a := &Authenticator{
		validator: v,
		logger:    defaultLogger(),
		tracer:    noop.NewTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return a, nil
}

// WithLogger sets the logger for the Authenticator.
//
// Failures are logged at Warn with their reason and, for token validation
// failures, the underlying validator error. Successes are logged at Debug.
//
// Example:
//
//	auth, _ := core.New(ctx, registry, cfg,
//	    core.WithLogger(slog.Default()),
//	)
func WithLogger(logger Logger) Option {
	return func(a *Authenticator) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		a.logger = logger
		return nil
	}
}

// WithTracer sets the OpenTelemetry tracer. Each Authenticate call records an
// "oidcbearer.Authenticate" span; failed calls carry an "auth.reason"
// attribute.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *Authenticator) error {
		if tracer == nil {
			return errors.New("tracer cannot be nil")
		}
		a.tracer = tracer
		return nil
	}
}
