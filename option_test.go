package oidcbearer

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/validator"
)

type stubValidator struct{}

func (stubValidator) ValidateToken(_ context.Context, _ string) (validator.Claims, error) {
	return validator.Claims{}, nil
}

func Test_New_OptionsValidation(t *testing.T) {
	auth, err := core.NewFromValidator(stubValidator{}, core.WithLogger(discardLogger{}))
	require.NoError(t, err)

	tests := []struct {
		name   string
		opts   []Option
		errMsg string
	}{
		{name: "valid minimal configuration"},
		{
			name: "valid full configuration",
			opts: []Option{
				WithValidateOnOptions(false),
				WithErrorHandler(DefaultErrorHandler),
				WithHeaderExtractor(AuthHeaderExtractor),
				WithExclusionURLs([]string{"/health"}),
				WithLogger(discardLogger{}),
				WithMetrics(NoopMetrics{}),
			},
		},
		{name: "nil error handler", opts: []Option{WithErrorHandler(nil)}, errMsg: "invalid option: errorHandler cannot be nil"},
		{name: "nil header extractor", opts: []Option{WithHeaderExtractor(nil)}, errMsg: "invalid option: headerExtractor cannot be nil"},
		{name: "empty exclusion list", opts: []Option{WithExclusionURLs(nil)}, errMsg: "invalid option: exclusion URLs list cannot be empty"},
		{name: "nil exclusion handler", opts: []Option{WithExclusionURLHandler(nil)}, errMsg: "invalid option: exclusion URL handler cannot be nil"},
		{name: "nil logger", opts: []Option{WithLogger(nil)}, errMsg: "invalid option: logger cannot be nil"},
		{name: "nil metrics", opts: []Option{WithMetrics(nil)}, errMsg: "invalid option: metrics cannot be nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw, err := New(auth, tt.opts...)
			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				assert.Nil(t, mw)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, mw)
		})
	}

	t.Run("nil authenticator", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrAuthenticatorNil)
	})
}

func Test_WithExclusionURLs(t *testing.T) {
	mw, err := New(&core.Authenticator{}, WithExclusionURLs([]string{"/health", "https://api.example.com/public"}))
	require.NoError(t, err)

	testCases := []struct {
		url  string
		want bool
	}{
		{url: "https://api.example.com/health", want: true},
		{url: "https://api.example.com/public", want: true},
		{url: "https://other.example.com/public", want: false},
		{url: "https://api.example.com/orders", want: false},
	}

	for _, testCase := range testCases {
		request, err := http.NewRequest(http.MethodGet, testCase.url, nil)
		require.NoError(t, err)
		assert.Equal(t, testCase.want, mw.exclusionURLHandler(request), testCase.url)
	}
}
