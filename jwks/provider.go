package jwks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/binkhq/go-oidc-bearer/internal/oidc"
)

// ErrFetchFailed is wrapped by every error returned from NewFetcher.
var ErrFetchFailed = errors.New("jwks fetch failed")

// Logger defines an optional logging interface compatible with log/slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Fetcher resolves a provider's discovery document and downloads its
// signing key set exactly once, at construction. The key set is never
// refreshed; a new Fetcher is required to pick up rotated keys.
type Fetcher struct {
	baseURL   *url.URL
	client    *http.Client
	logger    Logger
	jwksURI   string
	keySet    jwk.Set
	fetchedAt time.Time
}

// NewFetcher builds a Fetcher and performs both network requests: the
// discovery document GET followed by the GET of its jwks_uri.
//
// Required options:
//   - WithBaseURL: provider root URL the discovery document lives under
//
// Optional options:
//   - WithCustomClient: Custom HTTP client
//   - WithLogger: Logger for download progress
//
// There is no retry. ctx bounds both requests.
func NewFetcher(ctx context.Context, opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if f.baseURL == nil {
		return nil, errors.New("base URL is required (use WithBaseURL)")
	}

	if err := f.fetch(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return f, nil
}

func (f *Fetcher) fetch(ctx context.Context) error {
	f.logInfo("downloading OIDC metadata", "url", oidc.DiscoveryURL(*f.baseURL))

	wkEndpoints, err := oidc.GetWellKnownEndpoints(ctx, f.client, *f.baseURL)
	if err != nil {
		return err
	}
	f.jwksURI = wkEndpoints.JWKSURI

	f.logInfo("downloading JWKs", "url", f.jwksURI)

	body, err := oidc.Get(ctx, f.client, f.jwksURI)
	if err != nil {
		return err
	}

	set, err := jwk.ParseReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to parse JWKS from %s: %w", f.jwksURI, err)
	}
	if set.Len() == 0 {
		return fmt.Errorf("JWKS from %s contains no keys", f.jwksURI)
	}

	f.keySet = set
	f.fetchedAt = time.Now()

	f.logInfo("downloaded JWKs", "count", set.Len(), "url", f.jwksURI)

	return nil
}

func (f *Fetcher) logInfo(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Info(msg, args...)
	}
}

// KeySet returns the key set downloaded at construction.
func (f *Fetcher) KeySet() jwk.Set {
	return f.keySet
}

// JWKSURI returns the key set location read from the discovery document.
func (f *Fetcher) JWKSURI() string {
	return f.jwksURI
}

// FetchedAt reports when the key set was downloaded.
func (f *Fetcher) FetchedAt() time.Time {
	return f.fetchedAt
}
