package model

import "strings"

// Role is the coarse capability tag attached to an identity.
type Role string

const (
	RoleUnset      Role = ""
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

// ParseRole maps a wire value onto a Role. The empty string and "unset" both
// mean RoleUnset.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset":
		return RoleUnset, nil
	case string(RoleStudent):
		return RoleStudent, nil
	case string(RoleInstructor):
		return RoleInstructor, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return RoleUnset, &ValidationError{Field: "role", Message: "unknown role " + s}
	}
}

// String returns the wire value; RoleUnset renders as "unset".
func (r Role) String() string {
	if r == RoleUnset {
		return "unset"
	}
	return string(r)
}

// IsAny reports whether r is one of roles.
func (r Role) IsAny(roles ...Role) bool {
	for _, want := range roles {
		if r == want {
			return true
		}
	}
	return false
}
