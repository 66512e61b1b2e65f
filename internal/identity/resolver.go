package identity

import (
	"context"
	"strings"
)

// bearerPrefix is matched exactly: capitalization and the trailing space
// are significant.
const bearerPrefix = "Bearer "

// Resolver turns a raw Authorization header value into a caller identity.
type Resolver struct {
	verifier *TokenVerifier
}

// NewResolver constructs a Resolver.
func NewResolver(verifier *TokenVerifier) *Resolver {
	return &Resolver{verifier: verifier}
}

// Resolve authenticates the request from its Authorization header value.
// Every failure path returns the bare ErrUnauthenticated: a missing header,
// a wrong scheme, an empty token and an invalid credential are
// indistinguishable to the caller.
func (r *Resolver) Resolve(ctx context.Context, header string) (*Identity, error) {
	if header == "" {
		return nil, ErrUnauthenticated
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrUnauthenticated
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return nil, ErrUnauthenticated
	}
	id, err := r.verifier.Verify(ctx, token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return id, nil
}
