package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/propertymasters/propertymasters/internal/identity"
	_ "github.com/propertymasters/propertymasters/testing"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []string
}

func (a *recordingAudit) AuthorizationDenied(_ context.Context, actorID, operation string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, actorID+" "+operation)
}

func newTestGate(t *testing.T) (identity.Middleware, *identity.TokenIssuer, *recordingAudit) {
	t.Helper()
	issuer := identity.NewTokenIssuer("gate-secret", "propertymasters", time.Hour)
	verifier := identity.NewTokenVerifier("gate-secret", "propertymasters", nil)
	audit := &recordingAudit{}
	gate := identity.Middleware{Resolver: identity.NewResolver(verifier), Audit: audit}
	return gate, issuer, audit
}

func bearerFor(t *testing.T, issuer *identity.TokenIssuer, userID string, role identity.Role) string {
	t.Helper()
	issued, err := issuer.Issue(userID, role)
	require.NoError(t, err)
	return "Bearer " + issued.Token
}

func newTestRouter(gate identity.Middleware, invoked *bool) http.Handler {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(gate.Authenticate)
		r.With(gate.Require(identity.RoleBuyer, identity.RoleTenant, identity.RoleAgent)).
			Post("/bookings", func(w http.ResponseWriter, _ *http.Request) {
				if invoked != nil {
					*invoked = true
				}
				w.WriteHeader(http.StatusCreated)
			})
		r.With(gate.Require(identity.RoleSuperAdmin)).
			Get("/dashboards/super-admin", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		// Layered guards: both the group check and the route check must pass.
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireAuth())
			r.With(gate.Require(identity.RoleSeller, identity.RoleAdmin)).
				Get("/dashboards/seller", func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				})
		})
	})
	return r
}

func TestAllowedRoleReachesHandler(t *testing.T) {
	gate, issuer, _ := newTestGate(t)
	invoked := false
	router := newTestRouter(gate, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Authorization", bearerFor(t, issuer, "buyer-1", identity.RoleBuyer))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusCreated, res.Code)
	require.True(t, invoked)
}

func TestDisallowedRoleGets403(t *testing.T) {
	gate, issuer, audit := newTestGate(t)
	invoked := false
	router := newTestRouter(gate, &invoked)

	// admin is not super_admin: no hierarchy between the two.
	req := httptest.NewRequest(http.MethodGet, "/dashboards/super-admin", nil)
	req.Header.Set("Authorization", bearerFor(t, issuer, "admin-1", identity.RoleAdmin))
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusForbidden, res.Code)
	require.Contains(t, res.Body.String(), "Forbidden")
	require.Len(t, audit.events, 1)
	require.Contains(t, audit.events[0], "admin-1")
}

func TestMissingCredentialGets401BeforeRoleCheck(t *testing.T) {
	gate, _, audit := newTestGate(t)
	invoked := false
	router := newTestRouter(gate, &invoked)

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
	require.False(t, invoked)
	require.Empty(t, audit.events)
}

func TestEmptyBearerTokenGets401(t *testing.T) {
	gate, _, _ := newTestGate(t)
	router := newTestRouter(gate, nil)

	req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
	req.Header.Set("Authorization", "Bearer ")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestLayeredGuardsComposeByAnd(t *testing.T) {
	gate, issuer, _ := newTestGate(t)
	router := newTestRouter(gate, nil)

	cases := []struct {
		role identity.Role
		want int
	}{
		{identity.RoleSeller, http.StatusOK},
		{identity.RoleAdmin, http.StatusOK},
		{identity.RoleBuyer, http.StatusForbidden},
		{identity.RoleSuperAdmin, http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/dashboards/seller", nil)
		req.Header.Set("Authorization", bearerFor(t, issuer, "u-"+tc.role.String(), tc.role))
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		require.Equal(t, tc.want, res.Code, "role %s", tc.role)
	}
}

func TestConcurrentRequestsAreIsolated(t *testing.T) {
	gate, issuer, _ := newTestGate(t)
	router := newTestRouter(gate, nil)

	buyer := bearerFor(t, issuer, "buyer-1", identity.RoleBuyer)
	viewer := bearerFor(t, issuer, "viewer-1", identity.RoleViewer)

	var wg sync.WaitGroup
	codes := make([]int, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			header := buyer
			if i%2 == 1 {
				header = viewer
			}
			req := httptest.NewRequest(http.MethodPost, "/bookings", nil)
			req.Header.Set("Authorization", header)
			res := httptest.NewRecorder()
			router.ServeHTTP(res, req)
			codes[i] = res.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if i%2 == 0 {
			require.Equal(t, http.StatusCreated, code, "request %d", i)
		} else {
			require.Equal(t, http.StatusForbidden, code, "request %d", i)
		}
	}
}
