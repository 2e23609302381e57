package domain

import "fmt"

// Role is the closed set of access tiers. It is stored as a string column
// but all authorization logic switches on the typed constant, never on raw
// request input.
type Role string

const (
	RoleAdminHR  Role = "ADMIN_HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdminHR, RoleManager, RoleEmployee:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
