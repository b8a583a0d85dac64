package jwks

import (
	"fmt"
	"net/http"
	"net/url"
)

// Option is how options for the Fetcher are set up.
type Option func(*Fetcher) error

// WithBaseURL sets the provider root URL. This is a required option.
//
// The discovery document is fetched from
// {baseURL}/.well-known/openid-configuration.
func WithBaseURL(baseURL *url.URL) Option {
	return func(f *Fetcher) error {
		if baseURL == nil {
			return fmt.Errorf("base URL cannot be nil")
		}
		if baseURL.Scheme == "" || baseURL.Host == "" {
			return fmt.Errorf("base URL %q must be absolute", baseURL.String())
		}
		f.baseURL = baseURL
		return nil
	}
}

// WithCustomClient sets a custom HTTP client for the Fetcher.
// If not specified, a default client with 30s timeout is used.
func WithCustomClient(c *http.Client) Option {
	return func(f *Fetcher) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		f.client = c
		return nil
	}
}

// WithLogger sets a logger that reports download progress.
func WithLogger(logger Logger) Option {
	return func(f *Fetcher) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		f.logger = logger
		return nil
	}
}
