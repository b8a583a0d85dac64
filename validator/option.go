package validator

import (
	"errors"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// WithKeySet sets the keys token signatures are verified against.
// This is a required option.
//
// Tokens must carry a kid header naming one of the keys in the set.
func WithKeySet(set jwk.Set) Option {
	return func(v *Validator) error {
		if set == nil {
			return errors.New("key set cannot be nil")
		}
		if set.Len() == 0 {
			return errors.New("key set cannot be empty")
		}
		v.keySet = set
		return nil
	}
}

// WithIssuer sets the expected issuer claim (iss) for token validation.
// This is a required option.
//
// The comparison is exact: a trailing slash matters.
func WithIssuer(issuer string) Option {
	return func(v *Validator) error {
		if issuer == "" {
			return errors.New("issuer cannot be empty")
		}
		v.issuer = issuer
		return nil
	}
}

// WithAudience sets the expected audience claim (aud) for token validation.
// This is a required option.
func WithAudience(audience string) Option {
	return func(v *Validator) error {
		if audience == "" {
			return errors.New("audience cannot be empty")
		}
		v.audience = audience
		return nil
	}
}

// WithAllowedClockSkew sets the allowed clock skew for time-based claims.
//
// This allows for some tolerance when validating exp, nbf, and iat claims
// to account for clock differences between systems. If not set, the default
// is 0 (no clock skew allowed).
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.allowedClockSkew = skew
		return nil
	}
}

// WithClock replaces time.Now as the time source for exp, nbf and iat.
func WithClock(clock func() time.Time) Option {
	return func(v *Validator) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		v.clock = clock
		return nil
	}
}
