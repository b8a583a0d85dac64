/*
Package jwks downloads an OIDC provider's JSON Web Key Set.

A Fetcher is built once per provider configuration. Construction performs two
requests and nothing else:

 1. GET {base_url}/.well-known/openid-configuration, reading jwks_uri
 2. GET {jwks_uri}, parsed as a JWK Set

Either request failing, a non-2xx status, a discovery document without
jwks_uri, or a key set that does not parse (or holds no keys) fails
NewFetcher with an error wrapping ErrFetchFailed.

# Usage

	baseURL, _ := url.Parse("https://login.microsoftonline.com/{tenant}/v2.0")

	fetcher, err := jwks.NewFetcher(ctx,
	    jwks.WithBaseURL(baseURL),
	    jwks.WithCustomClient(&http.Client{Timeout: 10 * time.Second}),
	)
	if err != nil {
	    log.Fatal(err)
	}

	set := fetcher.KeySet()

# Key Rotation

Keys are never refreshed. Processes that outlive a provider key rotation
reject tokens signed with the new keys until a new Fetcher is constructed.
*/
package jwks
