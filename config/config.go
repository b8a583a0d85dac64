// Package config builds core.ProviderConfig values from the environment and
// from well-known provider layouts.
package config

import (
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"

	"github.com/binkhq/go-oidc-bearer/core"
)

// Env is the environment layout read by Load.
type Env struct {
	// BaseURL of the provider. ENV: OIDC_BASE_URL
	BaseURL string `env:"OIDC_BASE_URL,required"`
	// Issuer tokens must carry. ENV: OIDC_ISSUER
	Issuer string `env:"OIDC_ISSUER,required"`
	// Audience tokens must be issued for. ENV: OIDC_AUDIENCE
	Audience string `env:"OIDC_AUDIENCE,required"`
}

// Load reads OIDC_BASE_URL, OIDC_ISSUER and OIDC_AUDIENCE and returns the
// validated provider configuration.
func Load() (core.ProviderConfig, error) {
	var env Env
	if err := envdecode.Decode(&env); err != nil {
		return core.ProviderConfig{}, fmt.Errorf("could not load OIDC configuration: %w", err)
	}

	cfg := core.ProviderConfig{
		BaseURL:  strings.TrimSpace(env.BaseURL),
		Issuer:   strings.TrimSpace(env.Issuer),
		Audience: strings.TrimSpace(env.Audience),
	}
	if err := cfg.Validate(); err != nil {
		return core.ProviderConfig{}, fmt.Errorf("invalid OIDC configuration: %w", err)
	}

	return cfg, nil
}

// AzureAD returns the configuration for access tokens issued by a Microsoft
// Entra ID tenant. Discovery uses the v2.0 endpoint while the tokens carry
// the sts.windows.net issuer.
func AzureAD(tenantID, audience string) core.ProviderConfig {
	return core.ProviderConfig{
		BaseURL:  "https://login.microsoftonline.com/" + tenantID + "/v2.0",
		Issuer:   "https://sts.windows.net/" + tenantID + "/",
		Audience: audience,
	}
}
