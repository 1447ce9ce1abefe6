package models

import "fmt"

// Role is the closed set of user roles. Every feature gate in the service
// resolves through this type rather than raw strings.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
)

// AllRoles lists every valid role, in display order.
var AllRoles = []Role{RoleAdmin, RoleTeacher, RoleStudent, RoleParent}

// ParseRole converts a raw string into a Role, rejecting anything outside the
// closed set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent, RoleParent:
		return Role(s), nil
	default:
		return "", fmt.Errorf("invalid role %q", s)
	}
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
