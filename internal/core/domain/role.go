package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles, ranked Owner > Manager > Coach > Member.
type Role string

const (
	RoleOwner   Role = "OWNER"
	RoleManager Role = "MANAGER"
	RoleCoach   Role = "COACH"
	RoleMember  Role = "MEMBER"
)

// AllRoles lists every role from most to least senior.
var AllRoles = []Role{RoleOwner, RoleManager, RoleCoach, RoleMember}

// Rank returns the seniority of the role. Higher is more senior; unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleManager:
		return 3
	case RoleCoach:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}

// IsValid reports whether r is one of the four defined roles.
func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// IsStaff reports whether the role administers other accounts.
func (r Role) IsStaff() bool {
	return r == RoleOwner || r == RoleManager || r == RoleCoach
}

func (r Role) String() string {
	return string(r)
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.IsValid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// RoleFromLegacyCode maps the numeric user types of the previous system
// (1 admin, 2 manager, 3 trainer, 4 user) onto roles.
func RoleFromLegacyCode(code int) (Role, error) {
	switch code {
	case 1:
		return RoleOwner, nil
	case 2:
		return RoleManager, nil
	case 3:
		return RoleCoach, nil
	case 4:
		return RoleMember, nil
	default:
		return "", fmt.Errorf("unknown role code %d", code)
	}
}
