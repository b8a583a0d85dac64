package oidcbearer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/binkhq/go-oidc-bearer/core"
)

// ErrorHandler is called when a request is not authenticated. err is a
// *core.AuthError for every authentication failure; check it with
// errors.As, or errors.Is(err, core.ErrUnauthorized). Any other error is
// unexpected and should produce a 500.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// ErrorResponse is the JSON body written by DefaultErrorHandler.
type ErrorResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultErrorHandler is the default error handler implementation for the
// Middleware. If an error handler is not provided via the WithErrorHandler
// option this will be used.
//
// Authentication failures get a 401 whose description is the AuthError
// message, with a WWW-Authenticate: Bearer challenge. Anything else gets a
// 500 with a generic description.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	var authErr *core.AuthError
	if errors.As(err, &authErr) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, authErr.Message)
		return
	}

	writeError(w, http.StatusInternalServerError, "Something went wrong while checking the token.")
}

func writeError(w http.ResponseWriter, status int, description string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Title:       strconv.Itoa(status) + " " + http.StatusText(status),
		Description: description,
	})
}
