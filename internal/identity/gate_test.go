package identity

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorizeRequiresIdentityFirst(t *testing.T) {
	req := RequireRoles(RoleAdmin)
	require.ErrorIs(t, Authorize(nil, req), ErrUnauthenticated)
	// Even an empty requirement never admits an anonymous caller.
	require.ErrorIs(t, Authorize(nil, RequireRoles()), ErrUnauthenticated)
}

func TestAuthorizeEmptyRequirementAdmitsAnyRole(t *testing.T) {
	req := RequireRoles()
	for _, r := range AllRoles() {
		require.NoError(t, Authorize(&Identity{ID: "u1", Role: r}, req))
	}
}

func TestAuthorizeExactMembership(t *testing.T) {
	req := RequireRoles(RoleBuyer, RoleTenant, RoleAgent)

	require.NoError(t, Authorize(&Identity{ID: "u1", Role: RoleBuyer}, req))
	require.NoError(t, Authorize(&Identity{ID: "u2", Role: RoleTenant}, req))
	require.NoError(t, Authorize(&Identity{ID: "u3", Role: RoleAgent}, req))

	require.ErrorIs(t, Authorize(&Identity{ID: "u4", Role: RoleLandlord}, req), ErrForbidden)
	require.ErrorIs(t, Authorize(&Identity{ID: "u5", Role: RoleViewer}, req), ErrForbidden)
}

func TestAuthorizeNoRoleHierarchy(t *testing.T) {
	// super_admin does not inherit admin access, and vice versa.
	adminOnly := RequireRoles(RoleAdmin)
	require.ErrorIs(t, Authorize(&Identity{ID: "s", Role: RoleSuperAdmin}, adminOnly), ErrForbidden)

	superOnly := RequireRoles(RoleSuperAdmin)
	require.ErrorIs(t, Authorize(&Identity{ID: "a", Role: RoleAdmin}, superOnly), ErrForbidden)

	// manager and property_manager are unrelated roles.
	pmOnly := RequireRoles(RolePropertyManager)
	require.ErrorIs(t, Authorize(&Identity{ID: "m", Role: RoleManager}, pmOnly), ErrForbidden)
	require.NoError(t, Authorize(&Identity{ID: "pm", Role: RolePropertyManager}, pmOnly))
}

func TestAuthorizeIsDeterministic(t *testing.T) {
	req := RequireRoles(RoleSeller, RoleAdmin)
	caller := &Identity{ID: "u1", Role: RoleSeller}
	for i := 0; i < 100; i++ {
		require.NoError(t, Authorize(caller, req))
	}
	denied := &Identity{ID: "u2", Role: RoleBuyer}
	for i := 0; i < 100; i++ {
		require.ErrorIs(t, Authorize(denied, req), ErrForbidden)
	}
}

func TestAuthorizeConcurrentCallers(t *testing.T) {
	req := RequireRoles(RoleAgent)
	var wg sync.WaitGroup
	results := make([]error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			role := RoleAgent
			if i%2 == 1 {
				role = RoleTenant
			}
			results[i] = Authorize(&Identity{ID: "u", Role: role}, req)
		}(i)
	}
	wg.Wait()
	for i, err := range results {
		if i%2 == 0 {
			require.NoError(t, err, "caller %d", i)
		} else {
			require.ErrorIs(t, err, ErrForbidden, "caller %d", i)
		}
	}
}

func TestRequireRolesDropsInvalidAndDuplicates(t *testing.T) {
	req := RequireRoles(RoleAdmin, RoleAdmin, Role("bogus"), RoleAgent)
	require.Equal(t, []Role{RoleAdmin, RoleAgent}, req.Roles())
	require.False(t, req.Allows(Role("bogus")))
}
