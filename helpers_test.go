package oidcbearer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/internal/oidctest"
)

const testAudience = "api://app"

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}

func newTestAuthenticator(t *testing.T) (*core.Authenticator, *oidctest.Provider) {
	t.Helper()

	provider := oidctest.NewProvider(t)

	registry, err := core.NewRegistry(core.WithRegistryLogger(discardLogger{}))
	require.NoError(t, err)

	auth, err := core.New(context.Background(), registry, core.ProviderConfig{
		BaseURL:  provider.BaseURL(),
		Issuer:   provider.Issuer(),
		Audience: testAudience,
	}, core.WithLogger(discardLogger{}))
	require.NoError(t, err)

	return auth, provider
}

func signToken(t *testing.T, provider *oidctest.Provider, scp string) string {
	t.Helper()
	return provider.Sign(t, map[string]any{
		"iss": provider.Issuer(),
		"aud": testAudience,
		"sub": "user-1",
		"scp": scp,
		"exp": time.Now().Add(time.Hour),
	})
}
