/*
Package validator verifies bearer tokens using the lestrrat-go/jwx v2 library.

A Validator holds an immutable key set (typically the one downloaded by a
jwks.Fetcher) together with the issuer and audience a provider configuration
expects. ValidateToken performs, in order:

 1. JWS parsing of the compact token
 2. signature verification against the key set (the kid header selects the key)
 3. exact comparison of iss with the configured issuer
 4. membership of the configured audience in aud (string or array form)
 5. exp, nbf and iat checks against the clock, with optional skew

No claim is read before the signature has been verified. On success the full
claim mapping is returned unfiltered.

# Basic Usage

	fetcher, err := jwks.NewFetcher(ctx, jwks.WithBaseURL(baseURL))
	if err != nil {
	    log.Fatal(err)
	}

	v, err := validator.New(
	    validator.WithKeySet(fetcher.KeySet()),
	    validator.WithIssuer("https://sts.windows.net/{tenant}/"),
	    validator.WithAudience("api://my-app"),
	)
	if err != nil {
	    log.Fatal(err)
	}

	claims, err := v.ValidateToken(ctx, rawToken)

# Algorithms

When a key in the set does not carry an alg parameter (Azure AD keys do not)
the algorithm is inferred from the key type, so an RSA key only ever
verifies RS256/RS384/RS512/PS256/PS384/PS512 signatures.

# Errors

Every failure is a *ValidationError whose Code is one of the ErrorCode
constants, and errors.Is(err, ErrTokenInvalid) reports true. Details carry
the underlying jwx error for logging; it is not meant for the token's bearer.
*/
package validator
