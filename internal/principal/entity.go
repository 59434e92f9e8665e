// AngelaMos | 2026
// entity.go

package principal

import (
	"fmt"
	"strings"
	"time"
)

// Role tags a principal and selects the table that stores it. Admins and
// users live in disjoint tables; email is unique within a table only.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// LookupOrder is the order in which credential and token resolution probe
// the tables.
var LookupOrder = []Role{RoleAdmin, RoleUser}

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

func (r Role) table() (string, error) {
	switch r {
	case RoleAdmin:
		return "admins", nil
	case RoleUser:
		return "users", nil
	}
	return "", fmt.Errorf("no table for role %q", string(r))
}

type Principal struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
