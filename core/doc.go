/*
Package core provides framework-agnostic bearer token authentication that can
be used across different transport layers (HTTP, gRPC, etc.).

# Registry

A Registry holds one key set and validator per distinct ProviderConfig.
Create one at startup and pass it to every Authenticator:

	registry, err := core.NewRegistry(core.WithRegistryLogger(logger))
	if err != nil {
	    log.Fatal(err)
	}

	auth, err := core.New(ctx, registry, core.ProviderConfig{
	    BaseURL:  "https://idp.example.com",
	    Issuer:   "https://idp.example.com/",
	    Audience: "api://app",
	})

Concurrent calls with equal configurations perform a single discovery and key
set download. Keys are never refreshed: restart the process to pick up a
rotated signing key.

# Authenticate

	claims, err := auth.Authenticate(ctx, r.Header.Get("Authorization"), []string{"read"})
	if err != nil {
	    var authErr *core.AuthError
	    errors.As(err, &authErr)
	    // authErr.Reason selects the response, authErr.Message is its body.
	}

Granted scopes come from the scp claim. A space separated string and an array
of strings are both accepted; a token without scp grants no scopes.

# Adapters

Framework adapters implement HeaderSource and call AuthenticateSource, then
store the claims with SetClaims so handlers can read them with GetClaims.
*/
package core
