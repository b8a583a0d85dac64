package core

import (
	"errors"
	"fmt"
	"net/url"
)

// ProviderConfig identifies an identity provider and the tokens it is
// expected to issue for this application.
//
// ProviderConfig is comparable: two values with equal fields share one
// Registry entry.
type ProviderConfig struct {
	// BaseURL is the provider root. The discovery document is served at
	// {BaseURL}/.well-known/openid-configuration.
	BaseURL string

	// Issuer is the exact iss claim tokens must carry.
	Issuer string

	// Audience must appear in the aud claim of every token.
	Audience string
}

// Validate reports whether every field is set and BaseURL is an absolute URL.
func (c ProviderConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL is required")
	}
	if c.Issuer == "" {
		return errors.New("issuer is required")
	}
	if c.Audience == "" {
		return errors.New("audience is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("could not parse base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base URL %q must be absolute", c.BaseURL)
	}

	return nil
}

func (c ProviderConfig) key() string {
	return c.BaseURL + "\x00" + c.Issuer + "\x00" + c.Audience
}
