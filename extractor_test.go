package oidcbearer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_AuthHeaderExtractor(t *testing.T) {
	testCases := []struct {
		name       string
		header     http.Header
		wantHeader string
		wantOK     bool
	}{
		{
			name:   "no header",
			header: http.Header{},
		},
		{
			name:       "bearer token",
			header:     http.Header{"Authorization": []string{"Bearer abc"}},
			wantHeader: "Bearer abc",
			wantOK:     true,
		},
		{
			name:       "empty but present",
			header:     http.Header{"Authorization": []string{""}},
			wantHeader: "",
			wantOK:     true,
		},
		{
			name:       "first value wins",
			header:     http.Header{"Authorization": []string{"Bearer one", "Bearer two"}},
			wantHeader: "Bearer one",
			wantOK:     true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header = testCase.header

			gotHeader, gotOK := AuthHeaderExtractor(request)
			assert.Equal(t, testCase.wantHeader, gotHeader)
			assert.Equal(t, testCase.wantOK, gotOK)
		})
	}
}

func Test_MultiHeaderExtractor(t *testing.T) {
	extractor := MultiHeaderExtractor(
		NamedHeaderExtractor("X-Forwarded-Authorization"),
		AuthHeaderExtractor,
	)

	t.Run("first extractor wins", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("X-Forwarded-Authorization", "Bearer forwarded")
		request.Header.Set("Authorization", "Bearer direct")

		header, ok := extractor(request)
		assert.True(t, ok)
		assert.Equal(t, "Bearer forwarded", header)
	})

	t.Run("falls back", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set("Authorization", "Bearer direct")

		header, ok := extractor(request)
		assert.True(t, ok)
		assert.Equal(t, "Bearer direct", header)
	})

	t.Run("nothing found", func(t *testing.T) {
		_, ok := extractor(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})
}
