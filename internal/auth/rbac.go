package auth

import "strings"

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// NormalizeRole maps free-form input to a known role, or "" when unknown.
// Unknown roles are rejected rather than defaulted: the role gates every
// authorization decision downstream.
func NormalizeRole(role string) Role {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleStudent):
		return RoleStudent
	default:
		return ""
	}
}

func IsAdmin(role string) bool {
	return NormalizeRole(role) == RoleAdmin
}

func IsStudent(role string) bool {
	return NormalizeRole(role) == RoleStudent
}
