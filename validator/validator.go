package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Validator verifies bearer tokens against a fixed key set and the
// provider's expected issuer and audience.
type Validator struct {
	keySet           jwk.Set          // Required.
	issuer           string           // Required.
	audience         string           // Required.
	allowedClockSkew time.Duration    // Optional.
	clock            func() time.Time // Optional.
}

// New sets up a new Validator with the provided options.
//
// Required options:
//   - WithKeySet: the provider's signing keys
//   - WithIssuer: expected iss claim
//   - WithAudience: expected aud claim
//
// Optional options:
//   - WithAllowedClockSkew: tolerance for exp, nbf and iat
//   - WithClock: time source used for exp, nbf and iat
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		clock: time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := v.validate(); err != nil {
		return nil, fmt.Errorf("invalid validator configuration: %w", err)
	}

	return v, nil
}

func (v *Validator) validate() error {
	if v.keySet == nil {
		return errors.New("key set is required (use WithKeySet)")
	}
	if v.issuer == "" {
		return errors.New("issuer is required (use WithIssuer)")
	}
	if v.audience == "" {
		return errors.New("audience is required (use WithAudience)")
	}
	return nil
}

// ValidateToken verifies tokenString and returns every claim it carries.
//
// The signature is checked against the key set before any claim is read.
// The iss claim must equal the configured issuer, the configured audience
// must appear in aud, and exp, nbf and iat must hold against the clock.
// Every failure is a *ValidationError.
func (v *Validator) ValidateToken(_ context.Context, tokenString string) (Claims, error) {
	msg, err := jws.ParseString(tokenString)
	if err != nil {
		return nil, NewValidationError(ErrorCodeTokenMalformed, "could not parse the token", err)
	}

	token, err := jwt.ParseString(
		tokenString,
		jwt.WithKeySet(v.keySet, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(false),
	)
	if err != nil {
		return nil, NewValidationError(ErrorCodeInvalidSignature, "could not verify the token", err)
	}

	if token.Issuer() != v.issuer {
		return nil, NewValidationError(
			ErrorCodeInvalidIssuer,
			"issuer mismatch",
			fmt.Errorf("expected %q, token has %q", v.issuer, token.Issuer()),
		)
	}

	if !slices.Contains(token.Audience(), v.audience) {
		return nil, NewValidationError(
			ErrorCodeInvalidAudience,
			"audience mismatch",
			fmt.Errorf("expected %q, token has %q", v.audience, token.Audience()),
		)
	}

	err = jwt.Validate(token,
		jwt.WithClock(jwt.ClockFunc(v.clock)),
		jwt.WithAcceptableSkew(v.allowedClockSkew),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired()) {
			return nil, NewValidationError(ErrorCodeTokenExpired, "token is expired", err)
		}
		return nil, NewValidationError(ErrorCodeInvalidClaims, "time based claims not satisfied", err)
	}

	// The payload is read from the verified message so claim values keep
	// their JSON shape: a space separated scp stays a string.
	var claims Claims
	if err := json.Unmarshal(msg.Payload(), &claims); err != nil || claims == nil {
		return nil, NewValidationError(ErrorCodeTokenMalformed, "token payload is not a JSON object", err)
	}

	return claims, nil
}
