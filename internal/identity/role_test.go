package identity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRoleAcceptsEveryKnownRole(t *testing.T) {
	for _, r := range AllRoles() {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		require.Equal(t, r, parsed)
	}
}

func TestParseRoleRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "root", "Admin", "ADMIN", "super-admin", "admin "} {
		_, err := ParseRole(raw)
		require.Error(t, err, "raw=%q", raw)
	}
}

func TestRoleEnumerationIsClosed(t *testing.T) {
	require.Len(t, AllRoles(), 13)
	require.False(t, Role("owner").Valid())
	require.True(t, RolePropertyManager.Valid())
	require.True(t, RoleManager.Valid())
	require.NotEqual(t, RolePropertyManager, RoleManager)
}
