package oidcgrpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/internal/oidctest"
)

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}

const (
	methodList   = "/orders.v1.Orders/List"
	methodCreate = "/orders.v1.Orders/Create"
	methodHealth = "/grpc.health.v1.Health/Check"
)

func newMiddleware(t *testing.T, opts ...Option) (*Middleware, string) {
	t.Helper()

	provider := oidctest.NewProvider(t)
	registry, err := core.NewRegistry(core.WithRegistryLogger(discardLogger{}))
	require.NoError(t, err)

	auth, err := core.New(context.Background(), registry, core.ProviderConfig{
		BaseURL:  provider.BaseURL(),
		Issuer:   provider.Issuer(),
		Audience: "api://app",
	}, core.WithLogger(discardLogger{}))
	require.NoError(t, err)

	mw, err := New(auth, append([]Option{
		WithMethodScopes(map[string][]string{methodCreate: {"orders.write"}}),
		WithExcludedMethods([]string{methodHealth}),
	}, opts...)...)
	require.NoError(t, err)

	token := provider.Sign(t, map[string]any{
		"iss": provider.Issuer(),
		"aud": "api://app",
		"sub": "user-1",
		"scp": "orders.read",
		"exp": time.Now().Add(time.Hour),
	})

	return mw, token
}

func incoming(authorization ...string) context.Context {
	md := metadata.MD{}
	for _, v := range authorization {
		md.Append("authorization", v)
	}
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestUnaryServerInterceptor(t *testing.T) {
	mw, token := newMiddleware(t)
	interceptor := mw.UnaryServerInterceptor()

	testCases := []struct {
		name        string
		ctx         context.Context
		method      string
		wantCode    codes.Code
		wantMessage string
		wantSubject string
	}{
		{
			name:        "valid token",
			ctx:         incoming("Bearer " + token),
			method:      methodList,
			wantCode:    codes.OK,
			wantSubject: "user-1",
		},
		{
			name:        "no metadata",
			ctx:         context.Background(),
			method:      methodList,
			wantCode:    codes.Unauthenticated,
			wantMessage: "Authorization header is required but was not provided",
		},
		{
			name:        "wrong scheme",
			ctx:         incoming("Basic xyz"),
			method:      methodList,
			wantCode:    codes.Unauthenticated,
			wantMessage: `Authorization header must begin with "Bearer"`,
		},
		{
			name:        "invalid token",
			ctx:         incoming("Bearer abc"),
			method:      methodList,
			wantCode:    codes.Unauthenticated,
			wantMessage: "JWT failed validation",
		},
		{
			name:        "missing scope",
			ctx:         incoming("Bearer " + token),
			method:      methodCreate,
			wantCode:    codes.PermissionDenied,
			wantMessage: "Not all required scopes are present. Expected orders.write, got orders.read",
		},
		{
			name:     "excluded method",
			ctx:      context.Background(),
			method:   methodHealth,
			wantCode: codes.OK,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var called bool
			var subject string
			handler := func(ctx context.Context, req any) (any, error) {
				called = true
				if claims, err := GetClaims(ctx); err == nil {
					subject = claims.Subject()
				}
				return "ok", nil
			}

			resp, err := interceptor(testCase.ctx, nil, &grpc.UnaryServerInfo{FullMethod: testCase.method}, handler)

			assert.Equal(t, testCase.wantCode, status.Code(err))
			if testCase.wantCode != codes.OK {
				assert.False(t, called)
				assert.Nil(t, resp)
				assert.Equal(t, testCase.wantMessage, status.Convert(err).Message())
				return
			}

			assert.True(t, called)
			assert.Equal(t, "ok", resp)
			assert.Equal(t, testCase.wantSubject, subject)
		})
	}
}

type fakeServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (f *fakeServerStream) Context() context.Context { return f.ctx }

func TestStreamServerInterceptor(t *testing.T) {
	mw, token := newMiddleware(t)
	interceptor := mw.StreamServerInterceptor()

	t.Run("valid token reaches the handler with claims", func(t *testing.T) {
		var subject string
		err := interceptor(nil, &fakeServerStream{ctx: incoming("Bearer " + token)}, &grpc.StreamServerInfo{FullMethod: methodList},
			func(srv any, stream grpc.ServerStream) error {
				claims, err := MustGetClaims(stream.Context())
				require.NoError(t, err)
				subject = claims.Subject()
				return nil
			})

		require.NoError(t, err)
		assert.Equal(t, "user-1", subject)
	})

	t.Run("invalid token is rejected", func(t *testing.T) {
		err := interceptor(nil, &fakeServerStream{ctx: incoming("Bearer abc")}, &grpc.StreamServerInfo{FullMethod: methodList},
			func(any, grpc.ServerStream) error {
				t.Fatal("handler must not be called")
				return nil
			})

		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("excluded method carries no claims", func(t *testing.T) {
		err := interceptor(nil, &fakeServerStream{ctx: context.Background()}, &grpc.StreamServerInfo{FullMethod: methodHealth},
			func(_ any, stream grpc.ServerStream) error {
				_, err := MustGetClaims(stream.Context())
				assert.Equal(t, codes.Unauthenticated, status.Code(err))
				return nil
			})

		require.NoError(t, err)
	})
}

func TestOptions(t *testing.T) {
	t.Run("custom error handler and metadata key", func(t *testing.T) {
		sentinel := errors.New("denied")
		var gotReason core.Reason
		mw, token := newMiddleware(t,
			WithMetadataKey("X-Forwarded-Authorization"),
			WithErrorHandler(func(_ context.Context, err error) error {
				gotReason = core.ReasonOf(err)
				return sentinel
			}),
		)
		interceptor := mw.UnaryServerInterceptor()
		noop := func(context.Context, any) (any, error) { return nil, nil }

		_, err := interceptor(incoming("Bearer "+token), nil, &grpc.UnaryServerInfo{FullMethod: methodList}, noop)
		assert.ErrorIs(t, err, sentinel)
		assert.Equal(t, core.ReasonMissingHeader, gotReason)

		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-forwarded-authorization", "Bearer "+token))
		_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: methodList}, noop)
		assert.NoError(t, err)
	})

	t.Run("exclusion checker", func(t *testing.T) {
		mw, _ := newMiddleware(t, WithExclusionChecker(func(method string) bool { return method == methodList }))

		_, err := mw.UnaryServerInterceptor()(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: methodList},
			func(context.Context, any) (any, error) { return nil, nil })
		assert.NoError(t, err)
	})

	t.Run("nil authenticator", func(t *testing.T) {
		_, err := New(nil)
		assert.EqualError(t, err, "authenticator cannot be nil")
	})
}
