package user

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("invalid role")
)

// Role is the canonical access level of an account. Inputs are normalized
// through NormalizeRole so legacy spellings never reach the database.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// NormalizeRole maps the role spellings found in imported data onto the
// canonical enum. Unknown values return ErrInvalidRole.
func NormalizeRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "admin", "beach_admin", "beachadmin":
		return RoleAdmin, nil
	case "super_admin", "superadmin", "super admin", "super-admin", "super":
		return RoleSuperAdmin, nil
	case "":
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// User is an administrative account. PasswordHash never leaves the service
// layer.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines parameters for listing users.
type Filter struct {
	Keyword  string // matches email or name
	Role     string
	Page     int
	PageSize int
}
