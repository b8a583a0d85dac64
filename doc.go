/*
Package oidcbearer provides net/http middleware that authenticates requests
carrying an OpenID Connect bearer token.

The provider's discovery document and signing keys are downloaded once, when
the core.Authenticator is created. Every request is then checked in memory:
signature, issuer, audience, expiry and the scopes the route requires.

# Quick Start

	import (
	    oidcbearer "github.com/binkhq/go-oidc-bearer"
	    "github.com/binkhq/go-oidc-bearer/config"
	    "github.com/binkhq/go-oidc-bearer/core"
	)

	func main() {
	    cfg, err := config.Load()
	    if err != nil {
	        log.Fatal(err)
	    }

	    registry, err := core.NewRegistry()
	    if err != nil {
	        log.Fatal(err)
	    }

	    auth, err := core.New(context.Background(), registry, cfg)
	    if err != nil {
	        log.Fatal(err)
	    }

	    mw, err := oidcbearer.New(auth)
	    if err != nil {
	        log.Fatal(err)
	    }

	    http.Handle("/orders", mw.Protect("orders.read")(ordersHandler))
	    http.ListenAndServe(":8080", nil)
	}

# Accessing Claims

	func ordersHandler(w http.ResponseWriter, r *http.Request) {
	    claims, err := oidcbearer.GetClaims(r.Context())
	    if err != nil {
	        http.Error(w, "Unauthorized", http.StatusUnauthorized)
	        return
	    }
	    fmt.Fprintf(w, "hello %s", claims.Subject())
	}

# Error Responses

DefaultErrorHandler answers every authentication failure with a 401:

	HTTP/1.1 401 Unauthorized
	Content-Type: application/json
	WWW-Authenticate: Bearer

	{"title":"401 Unauthorized","description":"JWT failed validation"}

A request without an Authorization header is described as
"Authorization header is required but was not provided". Use
WithErrorHandler to branch on core.AuthError's Reason instead.

# Skipping Authentication

WithExclusionURLs and WithExclusionURLHandler mark requests that are served
without authentication; WithValidateOnOptions(false) does the same for CORS
preflight requests. Skipped requests carry no claims.

# Logging and Metrics

Logger adapters exist for logrus (the default), zap, zerolog and log/slog.
NewPrometheusMetrics records oidc_bearer_auth_total by reason and
oidc_bearer_auth_duration_seconds.

# Other Frameworks

See framework/gin, framework/echo and framework/grpc.
*/
package oidcbearer
