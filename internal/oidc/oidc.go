package oidc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// maxDocumentSize bounds discovery and key set response bodies.
const maxDocumentSize = 1 << 20

// WellKnownPath is appended to the provider base URL to locate the discovery document.
const WellKnownPath = ".well-known/openid-configuration"

// ErrDiscovery is wrapped by every error returned from GetWellKnownEndpoints.
var ErrDiscovery = errors.New("oidc discovery failed")

// ErrDocumentTooLarge is returned by Get for bodies over 1 MiB.
var ErrDocumentTooLarge = errors.New("document exceeds 1 MiB")

// WellKnownEndpoints holds the well known OIDC endpoints
type WellKnownEndpoints struct {
	Issuer  string `json:"issuer"`
	JWKSURI string `json:"jwks_uri"`
}

// DiscoveryURL returns the discovery document location for baseURL.
func DiscoveryURL(baseURL url.URL) string {
	baseURL.Path = path.Join("/", baseURL.Path, WellKnownPath)
	return baseURL.String()
}

// GetWellKnownEndpoints fetches the discovery document published under
// baseURL and returns the endpoints it advertises. A non-2xx status, a body
// that is not JSON or a document without a jwks_uri is an error.
func GetWellKnownEndpoints(ctx context.Context, client *http.Client, baseURL url.URL) (*WellKnownEndpoints, error) {
	discoveryURL := DiscoveryURL(baseURL)

	body, err := Get(ctx, client, discoveryURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	var wkEndpoints WellKnownEndpoints
	if err := json.Unmarshal(body, &wkEndpoints); err != nil {
		return nil, fmt.Errorf("%w: could not decode json body from %s: %w", ErrDiscovery, discoveryURL, err)
	}

	if wkEndpoints.JWKSURI == "" {
		return nil, fmt.Errorf("%w: document at %s has no jwks_uri", ErrDiscovery, discoveryURL)
	}
	if _, err := url.Parse(wkEndpoints.JWKSURI); err != nil {
		return nil, fmt.Errorf("%w: could not parse jwks_uri %q: %w", ErrDiscovery, wkEndpoints.JWKSURI, err)
	}

	return &wkEndpoints, nil
}

// Get performs a GET against rawURL and returns the response body. Any
// status outside the 2xx range is reported as an error.
func Get(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build request to %s: %w", rawURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("request to %s returned status %d", rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("could not read response from %s: %w", rawURL, err)
	}
	if len(body) > maxDocumentSize {
		return nil, fmt.Errorf("%w: response from %s exceeds %d bytes", ErrDocumentTooLarge, rawURL, maxDocumentSize)
	}

	return body, nil
}
