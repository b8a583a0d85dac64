package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkhq/go-oidc-bearer/core"
)

func setEnv(t *testing.T, baseURL, issuer, audience string) {
	t.Helper()
	t.Setenv("OIDC_BASE_URL", baseURL)
	t.Setenv("OIDC_ISSUER", issuer)
	t.Setenv("OIDC_AUDIENCE", audience)
}

func TestLoad(t *testing.T) {
	t.Run("reads all three variables", func(t *testing.T) {
		setEnv(t, "https://idp.example.com/v2.0", "https://sts.example.com/tenant/", "api://app")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, core.ProviderConfig{
			BaseURL:  "https://idp.example.com/v2.0",
			Issuer:   "https://sts.example.com/tenant/",
			Audience: "api://app",
		}, cfg)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		setEnv(t, " https://idp.example.com ", "https://idp.example.com/\n", "\tapi://app")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "https://idp.example.com", cfg.BaseURL)
		assert.Equal(t, "https://idp.example.com/", cfg.Issuer)
		assert.Equal(t, "api://app", cfg.Audience)
	})

	t.Run("missing audience", func(t *testing.T) {
		setEnv(t, "https://idp.example.com", "https://idp.example.com/", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not load OIDC configuration")
	})

	t.Run("nothing set", func(t *testing.T) {
		setEnv(t, "", "", "")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("relative base URL", func(t *testing.T) {
		setEnv(t, "/just/a/path", "https://idp.example.com/", "api://app")

		_, err := Load()
		require.EqualError(t, err, `invalid OIDC configuration: base URL "/just/a/path" must be absolute`)
	})
}

func TestAzureAD(t *testing.T) {
	cfg := AzureAD("a1b2c3", "api://orders")

	assert.Equal(t, core.ProviderConfig{
		BaseURL:  "https://login.microsoftonline.com/a1b2c3/v2.0",
		Issuer:   "https://sts.windows.net/a1b2c3/",
		Audience: "api://orders",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}
