package identity

import "errors"

var (
	// ErrUnauthenticated indicates the caller identity could not be
	// established: missing header, malformed scheme, or an invalid, expired
	// or revoked credential. The causes are deliberately indistinguishable
	// so a probing client learns nothing about which check failed.
	// Maps to HTTP 401.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden indicates the caller is authenticated but its role is
	// not in the operation's allowed set. Maps to HTTP 403; retrying with
	// the same identity can never succeed.
	ErrForbidden = errors.New("insufficient role")
)
