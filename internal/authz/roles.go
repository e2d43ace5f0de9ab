// Package authz is the authorization core: a flat ordered role enum and
// one explicit permission table evaluated per operation, replacing
// per-route role lists.
package authz

import (
	"fmt"

	"github.com/megalai/backend/internal/apperr"
)

// Role is a flat enum. Ordering exists only for comparison; permissions
// never cascade implicitly, the table in policy.go is the whole
// contract.
type Role string

const (
	RoleStudent       Role = "student"
	RoleProfessor     Role = "professor"
	RoleOrgAdmin      Role = "orgAdmin"
	RolePlatformAdmin Role = "platformAdmin"
)

var roleRanks = map[Role]int{
	RoleStudent:       0,
	RoleProfessor:     1,
	RoleOrgAdmin:      2,
	RolePlatformAdmin: 3,
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q: %w", s, apperr.ErrInvalid)
	}
	return r, nil
}

func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank orders roles for comparison. Unknown roles rank below student.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.Valid() && r.Rank() >= other.Rank()
}
