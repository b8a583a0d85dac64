// Package oidcgrpc authenticates gRPC calls with a core.Authenticator.
//
//	mw, err := oidcgrpc.New(auth,
//	    oidcgrpc.WithMethodScopes(map[string][]string{
//	        "/orders.v1.Orders/Create": {"orders.write"},
//	    }),
//	    oidcgrpc.WithExcludedMethods([]string{"/grpc.health.v1.Health/Check"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server := grpc.NewServer(
//	    grpc.UnaryInterceptor(mw.UnaryServerInterceptor()),
//	    grpc.StreamInterceptor(mw.StreamServerInterceptor()),
//	)
//
// The bearer token is read from the "authorization" metadata key.
package oidcgrpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/binkhq/go-oidc-bearer/core"
	"github.com/binkhq/go-oidc-bearer/validator"
)

// Middleware provides unary and stream interceptors sharing one configuration.
type Middleware struct {
	auth             *core.Authenticator
	errorHandler     func(ctx context.Context, err error) error
	exclusionChecker func(method string) bool
	methodScopes     map[string][]string
	metadataKey      string
}

// New creates a Middleware around auth.
func New(auth *core.Authenticator, opts ...Option) (*Middleware, error) {
	if auth == nil {
		return nil, errors.New("authenticator cannot be nil")
	}

	m := &Middleware{
		auth:         auth,
		errorHandler: defaultGRPCErrorHandler,
		methodScopes: map[string][]string{},
		metadataKey:  DefaultMetadataKey,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func (m *Middleware) authenticate(ctx context.Context, method string) (context.Context, error) {
	src := &metadataSource{
		ctx:      ctx,
		key:      m.metadataKey,
		scopes:   m.methodScopes[method],
		disabled: m.exclusionChecker != nil && m.exclusionChecker(method),
	}

	claims, err := m.auth.AuthenticateSource(ctx, src)
	if err != nil {
		return ctx, m.errorHandler(ctx, err)
	}
	if claims == nil {
		return ctx, nil
	}

	return core.SetClaims(ctx, claims), nil
}

// UnaryServerInterceptor returns a grpc.UnaryServerInterceptor that
// authenticates every call before the handler runs.
func (m *Middleware) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		ctx, err := m.authenticate(ctx, info.FullMethod)
		if err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamServerInterceptor returns a grpc.StreamServerInterceptor that
// authenticates every stream before the handler runs.
func (m *Middleware) StreamServerInterceptor() grpc.StreamServerInterceptor {
	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		ctx, err := m.authenticate(ss.Context(), info.FullMethod)
		if err != nil {
			return err
		}
		return handler(srv, &wrappedServerStream{ServerStream: ss, ctx: ctx})
	}
}

// GetClaims returns the claims of the authenticated call.
//
// Example usage:
//
//	func (s *server) Create(ctx context.Context, req *pb.CreateRequest) (*pb.Order, error) {
//		claims, err := oidcgrpc.GetClaims(ctx)
//		if err != nil {
//			return nil, status.Error(codes.Unauthenticated, "no claims")
//		}
//		return s.create(ctx, claims.Subject(), req)
//	}
func GetClaims(ctx context.Context) (validator.Claims, error) {
	return core.GetClaims(ctx)
}

// MustGetClaims returns the claims of the authenticated call, or an
// Unauthenticated status error when there are none.
func MustGetClaims(ctx context.Context) (validator.Claims, error) {
	claims, err := core.GetClaims(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Unauthenticated, "failed to get validated claims: %v", err)
	}
	return claims, nil
}

// defaultGRPCErrorHandler maps missing scopes to PermissionDenied and every
// other authentication failure to Unauthenticated. The status message is the
// caller-safe AuthError message.
func defaultGRPCErrorHandler(_ context.Context, err error) error {
	var authErr *core.AuthError
	if !errors.As(err, &authErr) {
		return status.Error(codes.Internal, "failed to authenticate request")
	}
	if authErr.Reason == core.ReasonInsufficientScope {
		return status.Error(codes.PermissionDenied, authErr.Message)
	}
	return status.Error(codes.Unauthenticated, authErr.Message)
}

// wrappedServerStream is a wrapper around grpc.ServerStream that allows modifying
// the context returned by Context().
type wrappedServerStream struct {
	grpc.ServerStream
	ctx context.Context
}

// Context returns the context for this stream, which contains the claims
// when authentication succeeds.
func (w *wrappedServerStream) Context() context.Context {
	return w.ctx
}
