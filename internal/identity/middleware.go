package identity

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propertymasters/propertymasters/internal/platform/httpx"
)

// AuditSink receives authorization denial events. Only the actor and the
// target operation are recorded, never credential material.
type AuditSink interface {
	AuthorizationDenied(ctx context.Context, actorID, operation string)
}

// Middleware wires the resolver and gate into chi handler chains. Guards
// stack: a group-level RequireAuth and an operation-level Require both have
// to pass before the business handler runs.
type Middleware struct {
	Resolver *Resolver
	Logger   *slog.Logger
	Audit    AuditSink
}

// Authenticate resolves the bearer credential and attaches the caller
// identity to the request context. Resolution failure ends the request
// with a 401 problem response.
func (m Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.Resolver.Resolve(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			m.deny(w, r, nil, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), id)))
	})
}

// RequireAuth admits any authenticated caller regardless of role.
func (m Middleware) RequireAuth() func(http.Handler) http.Handler {
	return m.Require()
}

// Require admits callers whose role is an exact member of the given set.
// With no roles it behaves like RequireAuth.
func (m Middleware) Require(roles ...Role) func(http.Handler) http.Handler {
	requirement := RequireRoles(roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := FromContext(r.Context())
			if err := Authorize(caller, requirement); err != nil {
				m.deny(w, r, caller, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request, caller *Identity, err error) {
	operation := r.Method + " " + routePattern(r)
	switch {
	case err == ErrForbidden:
		if m.Logger != nil {
			m.Logger.Warn("authorization denied",
				slog.String("operation", operation),
				slog.String("actor", caller.ID),
				slog.String("role", caller.Role.String()))
		}
		if m.Audit != nil {
			m.Audit.AuthorizationDenied(r.Context(), caller.ID, operation)
		}
		httpx.Problem(w, http.StatusForbidden, "Forbidden", ErrForbidden.Error())
	default:
		if m.Logger != nil {
			m.Logger.Info("authentication failed", slog.String("operation", operation))
		}
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", ErrUnauthenticated.Error())
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
