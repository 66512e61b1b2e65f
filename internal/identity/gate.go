package identity

import "sort"

// Requirement is the immutable set of roles allowed to invoke one operation.
// It is declared once at route registration and never mutated afterwards.
// An empty requirement means authenticated-only: any valid identity passes.
type Requirement struct {
	allowed map[Role]struct{}
}

// RequireRoles builds a Requirement from the given roles. Duplicates and
// roles outside the closed enumeration are dropped.
func RequireRoles(roles ...Role) Requirement {
	allowed := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		if r.Valid() {
			allowed[r] = struct{}{}
		}
	}
	return Requirement{allowed: allowed}
}

// Empty reports whether the requirement carries no role restriction.
func (q Requirement) Empty() bool {
	return len(q.allowed) == 0
}

// Allows reports whether the role is a member of the allowed set.
func (q Requirement) Allows(r Role) bool {
	_, ok := q.allowed[r]
	return ok
}

// Roles returns the allowed roles in stable order, for logging.
func (q Requirement) Roles() []Role {
	roles := make([]Role, 0, len(q.allowed))
	for r := range q.allowed {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// Authorize decides whether the caller may invoke an operation guarded by
// the requirement. It is a pure function of its inputs: no identity yields
// ErrUnauthenticated, an empty requirement grants any authenticated caller,
// otherwise the caller's role must be an exact member of the allowed set.
// Stacked guards compose by AND; every layer must return nil.
func Authorize(caller *Identity, req Requirement) error {
	if caller == nil {
		return ErrUnauthenticated
	}
	if req.Empty() {
		return nil
	}
	if !req.Allows(caller.Role) {
		return ErrForbidden
	}
	return nil
}
