// Package oidcgin protects Gin routes with a core.Authenticator.
//
//	mw, err := oidcgin.New(auth)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	router.POST("/orders", mw.Protect("orders.write"), createOrder)
//
// Handlers read the claims with GetClaims(c), or with oidcbearer.GetClaims on
// c.Request.Context().
package oidcgin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/validator"
)

// DefaultClaimsKey is the gin.Context key claims are stored under.
const DefaultClaimsKey = "oidc_claims"

var (
	ErrMissingClaims = errors.New("no OIDC claims found in context")
	ErrInvalidClaims = errors.New("invalid OIDC claims type")
)

// Middleware authenticates Gin requests.
type Middleware struct {
	auth         *core.Authenticator
	errorHandler func(*gin.Context, error)
	contextKey   string
}

// New creates a Middleware around auth.
func New(auth *core.Authenticator, opts ...Option) (*Middleware, error) {
	if auth == nil {
		return nil, errors.New("authenticator cannot be nil")
	}

	m := &Middleware{
		auth:         auth,
		errorHandler: defaultGinErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

// Protect returns a handler that aborts the chain unless the request carries
// a valid bearer token granting every scope in scopes.
func (m *Middleware) Protect(scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.auth.AuthenticateSource(c.Request.Context(), &ginSource{c: c, scopes: scopes})
		if err != nil {
			m.errorHandler(c, err)
			c.Abort()
			return
		}

		c.Set(m.contextKey, claims)
		c.Request = c.Request.WithContext(core.SetClaims(c.Request.Context(), claims))
		c.Next()
	}
}

type ginSource struct {
	c      *gin.Context
	scopes []string
}

func (s *ginSource) AuthorizationHeader() (string, bool) {
	values := s.c.Request.Header.Values("Authorization")
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (s *ginSource) RequiredScopes() []string { return s.scopes }
func (s *ginSource) AuthDisabled() bool       { return false }

func defaultGinErrorHandler(c *gin.Context, err error) {
	var authErr *core.AuthError
	if !errors.As(err, &authErr) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"title":       "500 Internal Server Error",
			"description": "Something went wrong while checking the token.",
		})
		return
	}

	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"title":       "401 Unauthorized",
		"description": authErr.Message,
	})
}

// GetClaims returns the claims stored by Protect. An empty contextKey means
// DefaultClaimsKey.
func GetClaims(c *gin.Context, contextKey string) (validator.Claims, error) {
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}
	claims, exists := c.Get(contextKey)
	if !exists {
		return nil, ErrMissingClaims
	}

	validatedClaims, ok := claims.(validator.Claims)
	if !ok {
		return nil, ErrInvalidClaims
	}

	return validatedClaims, nil
}
