package oidcgrpc

import (
	"context"

	"google.golang.org/grpc/metadata"
)

// DefaultMetadataKey is the metadata key the bearer credential is read from.
const DefaultMetadataKey = "authorization"

// metadataSource describes an incoming call to the Authenticator.
type metadataSource struct {
	ctx      context.Context
	key      string
	scopes   []string
	disabled bool
}

func (s *metadataSource) AuthorizationHeader() (string, bool) {
	md, ok := metadata.FromIncomingContext(s.ctx)
	if !ok {
		return "", false
	}

	values := md.Get(s.key)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (s *metadataSource) RequiredScopes() []string { return s.scopes }
func (s *metadataSource) AuthDisabled() bool       { return s.disabled }
