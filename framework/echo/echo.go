// Package oidcecho protects Echo routes with a core.Authenticator.
//
//	mw, err := oidcecho.New(auth)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	e.POST("/orders", createOrder, mw.Protect("orders.write"))
package oidcecho

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/validator"
)

// DefaultClaimsKey is the echo.Context key claims are stored under.
const DefaultClaimsKey = "oidc_claims"

// Middleware authenticates Echo requests.
type Middleware struct {
	auth         *core.Authenticator
	errorHandler func(echo.Context, error) error
	contextKey   string
}

// New creates a Middleware around auth.
func New(auth *core.Authenticator, opts ...Option) (*Middleware, error) {
	if auth == nil {
		return nil, errors.New("authenticator cannot be nil")
	}

	m := &Middleware{
		auth:         auth,
		errorHandler: defaultEchoErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Protect returns middleware that stops the request unless it carries a
// valid bearer token granting every scope in scopes.
func (m *Middleware) Protect(scopes ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := m.auth.AuthenticateSource(c.Request().Context(), &echoSource{c: c, scopes: scopes})
			if err != nil {
				return m.errorHandler(c, err)
			}

			c.Set(m.contextKey, claims)
			c.SetRequest(c.Request().WithContext(core.SetClaims(c.Request().Context(), claims)))
			return next(c)
		}
	}
}

type echoSource struct {
	c      echo.Context
	scopes []string
}

func (s *echoSource) AuthorizationHeader() (string, bool) {
	values := s.c.Request().Header.Values(echo.HeaderAuthorization)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (s *echoSource) RequiredScopes() []string { return s.scopes }
func (s *echoSource) AuthDisabled() bool       { return false }

func defaultEchoErrorHandler(c echo.Context, err error) error {
	var authErr *core.AuthError
	if !errors.As(err, &authErr) {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"title":       "500 Internal Server Error",
			"description": "Something went wrong while checking the token.",
		})
	}

	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"title":       "401 Unauthorized",
		"description": authErr.Message,
	})
}

// GetClaims extracts the claims stored by Protect from the Echo context.
func GetClaims(c echo.Context, contextKey string) (validator.Claims, bool) {
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}
	claims, ok := c.Get(contextKey).(validator.Claims)
	return claims, ok && claims != nil
}
