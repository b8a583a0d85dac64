// Package oidctest runs a fake OpenID Connect provider for tests: it serves a
// discovery document and a key set over httptest and signs tokens with the
// key it publishes.
package oidctest

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"
)

// KeyID is the kid of the key published by every Provider.
const KeyID = "test-kid"

const (
	discoveryPath = "/.well-known/openid-configuration"
	keysPath      = "/discovery/keys"
)

type response struct {
	status int
	body   string
}

// Provider is a fake identity provider.
type Provider struct {
	Server *httptest.Server

	key       jwk.Key
	publicSet jwk.Set

	discoveryOverride *response
	keysOverride      *response
	latency           time.Duration

	discoveryHits atomic.Int32
	keysHits      atomic.Int32
}

// Option configures a Provider.
type Option func(*Provider)

// WithDiscoveryResponse replaces the discovery document response.
func WithDiscoveryResponse(status int, body string) Option {
	return func(p *Provider) {
		p.discoveryOverride = &response{status: status, body: body}
	}
}

// WithKeysResponse replaces the key set response.
func WithKeysResponse(status int, body string) Option {
	return func(p *Provider) {
		p.keysOverride = &response{status: status, body: body}
	}
}

// WithLatency delays every response by d.
func WithLatency(d time.Duration) Option {
	return func(p *Provider) {
		p.latency = d
	}
}

// NewProvider starts a Provider. The server is closed when the test ends.
func NewProvider(t testing.TB, opts ...Option) *Provider {
	t.Helper()

	p := &Provider{}
	for _, opt := range opts {
		opt(p)
	}

	p.key = NewSigningKey(t, KeyID)

	pub, err := jwk.PublicKeyOf(p.key)
	require.NoError(t, err)

	p.publicSet = jwk.NewSet()
	require.NoError(t, p.publicSet.AddKey(pub))

	p.Server = httptest.NewServer(http.HandlerFunc(p.serveHTTP))
	t.Cleanup(p.Server.Close)

	return p
}

func (p *Provider) serveHTTP(w http.ResponseWriter, r *http.Request) {
	if p.latency > 0 {
		time.Sleep(p.latency)
	}

	switch r.URL.Path {
	case discoveryPath:
		p.discoveryHits.Add(1)
		if p.discoveryOverride != nil {
			write(w, *p.discoveryOverride)
			return
		}
		body, _ := json.Marshal(map[string]string{
			"issuer":   p.Issuer(),
			"jwks_uri": p.JWKSURI(),
		})
		write(w, response{status: http.StatusOK, body: string(body)})
	case keysPath:
		p.keysHits.Add(1)
		if p.keysOverride != nil {
			write(w, *p.keysOverride)
			return
		}
		body, _ := json.Marshal(p.publicSet)
		write(w, response{status: http.StatusOK, body: string(body)})
	default:
		http.NotFound(w, r)
	}
}

func write(w http.ResponseWriter, resp response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

// BaseURL is the provider root the discovery document lives under.
func (p *Provider) BaseURL() string { return p.Server.URL }

// Issuer is the iss value the provider puts in its tokens.
func (p *Provider) Issuer() string { return p.Server.URL + "/" }

// JWKSURI is the key set location advertised by the discovery document.
func (p *Provider) JWKSURI() string { return p.Server.URL + keysPath }

// PublicKeySet returns the published key set.
func (p *Provider) PublicKeySet() jwk.Set { return p.publicSet }

// DiscoveryRequests counts discovery document requests served.
func (p *Provider) DiscoveryRequests() int { return int(p.discoveryHits.Load()) }

// KeysRequests counts key set requests served.
func (p *Provider) KeysRequests() int { return int(p.keysHits.Load()) }

// Sign returns a compact RS256 token carrying claims, signed with the
// published key.
func (p *Provider) Sign(t testing.TB, claims map[string]any) string {
	t.Helper()
	return SignWith(t, p.key, claims)
}

// NewSigningKey generates an RS256 private key with the given kid.
func NewSigningKey(t testing.TB, kid string) jwk.Key {
	t.Helper()

	raw, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	key, err := jwk.FromRaw(raw)
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, kid))
	require.NoError(t, key.Set(jwk.AlgorithmKey, jwa.RS256))

	return key
}

// SignWith signs claims with key.
func SignWith(t testing.TB, key jwk.Key, claims map[string]any) string {
	t.Helper()

	token := jwt.New()
	for name, value := range claims {
		require.NoError(t, token.Set(name, value))
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	require.NoError(t, err)

	return string(signed)
}
