package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	oidcbearer "github.com/binkhq/go-oidc-bearer"
	"github.com/binkhq/go-oidc-bearer/core"
	oidcecho "github.com/binkhq/go-oidc-bearer/framework/echo"
	oidcgin "github.com/binkhq/go-oidc-bearer/framework/gin"
)

const (
	frameworkHTTP = "http"
	frameworkGin  = "gin"
	frameworkEcho = "echo"
)

// newHandler serves POST /echo, which requires scope, and POST /echo-noauth.
// Both reply with the JSON body they were sent.
func newHandler(framework string, auth *core.Authenticator, scope string, reg prometheus.Registerer) (http.Handler, error) {
	switch framework {
	case frameworkHTTP:
		return newHTTPHandler(auth, scope, reg)
	case frameworkGin:
		return newGinHandler(auth, scope)
	case frameworkEcho:
		return newEchoHandler(auth, scope)
	default:
		return nil, fmt.Errorf("unknown framework %q: use http, gin or echo", framework)
	}
}

func newHTTPHandler(auth *core.Authenticator, scope string, reg prometheus.Registerer) (http.Handler, error) {
	metrics, err := oidcbearer.NewPrometheusMetrics(reg)
	if err != nil {
		return nil, err
	}

	mw, err := oidcbearer.New(auth, oidcbearer.WithMetrics(metrics))
	if err != nil {
		return nil, err
	}

	echoBody := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "request body must be a JSON object", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})

	mux := http.NewServeMux()
	mux.Handle("POST /echo", mw.Protect(scope)(echoBody))
	mux.Handle("POST /echo-noauth", echoBody)
	return mux, nil
}

func newGinHandler(auth *core.Authenticator, scope string) (http.Handler, error) {
	mw, err := oidcgin.New(auth)
	if err != nil {
		return nil, err
	}

	echoBody := func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
			return
		}
		c.JSON(http.StatusOK, body)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/echo", mw.Protect(scope), echoBody)
	r.POST("/echo-noauth", echoBody)
	return r, nil
}

func newEchoHandler(auth *core.Authenticator, scope string) (http.Handler, error) {
	mw, err := oidcecho.New(auth)
	if err != nil {
		return nil, err
	}

	echoBody := func(c echo.Context) error {
		var body map[string]any
		if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "request body must be a JSON object")
		}
		return c.JSON(http.StatusOK, body)
	}

	e := echo.New()
	e.HideBanner = true
	e.POST("/echo", echoBody, mw.Protect(scope))
	e.POST("/echo-noauth", echoBody)
	return e, nil
}
