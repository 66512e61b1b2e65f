package identity

import "fmt"

// Role classifies an authenticated principal. The set is closed: every role
// check compares exact values against this enumeration and no hierarchy is
// implied between roles. A super_admin is not an admin unless an operation
// lists both.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleAgent           Role = "agent"
	RoleLandlord        Role = "landlord"
	RoleTenant          Role = "tenant"
	RoleBuyer           Role = "buyer"
	RoleSeller          Role = "seller"
	RoleSolicitor       Role = "solicitor"
	RolePropertyManager Role = "property_manager"
	RoleContractor      Role = "contractor"
	RoleViewer          Role = "viewer"
	RoleSuperAdmin      Role = "super_admin"
	RoleManager         Role = "manager"
	RoleUser            Role = "user"
)

var roleSet = map[Role]struct{}{
	RoleAdmin:           {},
	RoleAgent:           {},
	RoleLandlord:        {},
	RoleTenant:          {},
	RoleBuyer:           {},
	RoleSeller:          {},
	RoleSolicitor:       {},
	RolePropertyManager: {},
	RoleContractor:      {},
	RoleViewer:          {},
	RoleSuperAdmin:      {},
	RoleManager:         {},
	RoleUser:            {},
}

// ParseRole maps a raw claim value onto the closed role set.
func ParseRole(raw string) (Role, error) {
	role := Role(raw)
	if !role.Valid() {
		return "", fmt.Errorf("identity: unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether the role belongs to the closed enumeration.
func (r Role) Valid() bool {
	_, ok := roleSet[r]
	return ok
}

// String returns the wire representation of the role.
func (r Role) String() string {
	return string(r)
}

// AllRoles returns every role in the enumeration.
func AllRoles() []Role {
	roles := make([]Role, 0, len(roleSet))
	for r := range roleSet {
		roles = append(roles, r)
	}
	return roles
}
