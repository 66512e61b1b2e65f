// Package identity implements the request authorization pipeline: bearer
// credential resolution into a caller identity, and role-set authorization
// of that identity against per-operation requirements.
package identity

import "context"

// Identity is the authenticated principal attached to a request. It is
// constructed once per request by the Resolver and never mutated afterwards.
type Identity struct {
	ID   string
	Role Role
}

type identityContextKey struct{}

// ContextWithIdentity stores the caller identity in context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// FromContext extracts the caller identity from context. It returns nil when
// no identity was attached, which downstream checks treat as unauthenticated.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
