package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/binkhq/go-oidc-bearer/jwks"
	"github.com/binkhq/go-oidc-bearer/validator"
)

// Entry is the key set fetched for one ProviderConfig together with the
// Validator built over it.
type Entry struct {
	Fetcher   *jwks.Fetcher
	Validator *validator.Validator
}

// Registry memoizes one Entry per distinct ProviderConfig.
//
// The first Get for a configuration downloads the provider's discovery
// document and key set. Concurrent Gets for the same configuration share that
// download; Gets for different configurations run independently. Failed
// downloads are not remembered, so a later Get retries.
//
// A Registry is meant to be created once at startup and shared by every
// Authenticator in the process.
type Registry struct {
	logger       Logger
	client       *http.Client
	fetchTimeout time.Duration

	mu      sync.RWMutex
	entries map[ProviderConfig]*Entry
	group   singleflight.Group
}

// DefaultFetchTimeout bounds the download of one configuration.
const DefaultFetchTimeout = 30 * time.Second

// RegistryOption configures a Registry.
type RegistryOption func(*Registry) error

// WithRegistryLogger sets the logger used for download progress and the
// multiple configuration warning.
func WithRegistryLogger(logger Logger) RegistryOption {
	return func(r *Registry) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		r.logger = logger
		return nil
	}
}

// WithHTTPClient sets the client used to reach the provider.
func WithHTTPClient(client *http.Client) RegistryOption {
	return func(r *Registry) error {
		if client == nil {
			return errors.New("HTTP client cannot be nil")
		}
		r.client = client
		return nil
	}
}

// WithFetchTimeout bounds the discovery and key set download of each
// configuration.
//
// Default: DefaultFetchTimeout
func WithFetchTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) error {
		if d <= 0 {
			return errors.New("fetch timeout must be positive")
		}
		r.fetchTimeout = d
		return nil
	}
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		logger:       defaultLogger(),
		fetchTimeout: DefaultFetchTimeout,
		entries:      make(map[ProviderConfig]*Entry),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return r, nil
}

// Get returns the Entry for cfg, building it on first use.
//
// ctx bounds only this caller's wait. The download itself runs detached from
// ctx, bounded by the fetch timeout, so a caller giving up early does not fail
// the other callers waiting on the same configuration.
func (r *Registry) Get(ctx context.Context, cfg ProviderConfig) (*Entry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid provider configuration: %w", err)
	}

	if entry, ok := r.lookup(cfg); ok {
		return entry, nil
	}

	ch := r.group.DoChan(cfg.key(), func() (any, error) {
		// Another caller may have finished between lookup and DoChan.
		if entry, ok := r.lookup(cfg); ok {
			return entry, nil
		}

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.fetchTimeout)
		defer cancel()

		entry, err := r.build(fetchCtx, cfg)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.entries[cfg] = entry
		count := len(r.entries)
		r.mu.Unlock()

		if count > 1 {
			r.logger.Warn(
				"more than one OIDC provider configuration is cached; reuse a single configuration to avoid extra requests to the discovery and JWKS endpoints",
				"configurations", count,
			)
		}

		return entry, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("waiting for provider configuration: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Entry), nil
	}
}

// Len returns the number of cached configurations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) lookup(cfg ProviderConfig) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.entries[cfg]
	return entry, ok
}

func (r *Registry) build(ctx context.Context, cfg ProviderConfig) (*Entry, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse base URL %q: %w", cfg.BaseURL, err)
	}

	fetcherOpts := []jwks.Option{
		jwks.WithBaseURL(baseURL),
		jwks.WithLogger(r.logger),
	}
	if r.client != nil {
		fetcherOpts = append(fetcherOpts, jwks.WithCustomClient(r.client))
	}

	fetcher, err := jwks.NewFetcher(ctx, fetcherOpts...)
	if err != nil {
		return nil, err
	}

	v, err := validator.New(
		validator.WithKeySet(fetcher.KeySet()),
		validator.WithIssuer(cfg.Issuer),
		validator.WithAudience(cfg.Audience),
	)
	if err != nil {
		return nil, err
	}

	return &Entry{Fetcher: fetcher, Validator: v}, nil
}
