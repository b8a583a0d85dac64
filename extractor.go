package oidcbearer

import (
	"net/http"
)

// HeaderExtractor returns the credential header of a request in
// "<scheme> <token>" form, and whether the request carried one.
type HeaderExtractor func(r *http.Request) (string, bool)

// AuthHeaderExtractor reads the Authorization header. A header that is
// present but empty is still reported as present.
func AuthHeaderExtractor(r *http.Request) (string, bool) {
	return NamedHeaderExtractor("Authorization")(r)
}

// NamedHeaderExtractor builds a HeaderExtractor that reads the named header,
// for example X-Forwarded-Authorization behind a gateway that rewrites
// Authorization.
func NamedHeaderExtractor(name string) HeaderExtractor {
	return func(r *http.Request) (string, bool) {
		values := r.Header.Values(name)
		if len(values) == 0 {
			return "", false
		}
		return values[0], true
	}
}

// MultiHeaderExtractor returns a HeaderExtractor that runs multiple
// HeaderExtractors and takes the first one that finds a header.
func MultiHeaderExtractor(extractors ...HeaderExtractor) HeaderExtractor {
	return func(r *http.Request) (string, bool) {
		for _, ex := range extractors {
			if header, ok := ex(r); ok {
				return header, true
			}
		}
		return "", false
	}
}

// requestSource describes an http.Request to the Authenticator.
type requestSource struct {
	request   *http.Request
	extractor HeaderExtractor
	scopes    []string
	disabled  bool
}

func (s *requestSource) AuthorizationHeader() (string, bool) { return s.extractor(s.request) }
func (s *requestSource) RequiredScopes() []string            { return s.scopes }
func (s *requestSource) AuthDisabled() bool                  { return s.disabled }
