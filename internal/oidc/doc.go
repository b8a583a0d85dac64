/*
Package oidc provides OIDC (OpenID Connect) discovery functionality.

This internal package fetches the discovery document an identity provider
publishes under its base URL:

	https://login.microsoftonline.com/{tenant}/v2.0/.well-known/openid-configuration

Only the jwks_uri field is required. The issuer advertised by the document is
decoded for diagnostics but never compared with the expected token issuer:
Azure AD's v2.0 discovery document advertises a different issuer than the
sts.windows.net issuer found in v1 access tokens.

# Usage

	endpoints, err := oidc.GetWellKnownEndpoints(ctx, client, *baseURL)
	if err != nil {
	    // network failure, non-2xx status, invalid JSON or missing jwks_uri
	}
	jwksURI := endpoints.JWKSURI

# Specification

OpenID Connect Discovery 1.0
https://openid.net/specs/openid-connect-discovery-1_0.html
*/
package oidc
