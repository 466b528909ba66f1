package domain

import (
	"strings"
	"time"
)

// Role is the canonical access level, resolved once at load time.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "stagiaire"
)

// MatriculeAdminPrefix marks administrator matricules.
const MatriculeAdminPrefix = "AD-"

// User is a trainee or administrator account.
// The password hash never leaves the repository layer.
type User struct {
	ID              string
	Matricule       string
	Email           string
	Pseudo          string
	Prenom          string
	Nom             string
	PasswordHash    string
	Role            Role
	Actif           bool
	DateInscription time.Time
	UpdatedAt       time.Time
}

// ResolveRole normalizes the two historical role sources into one enum.
// An explicit "admin" role wins; otherwise the matricule prefix decides.
// Legacy records carry only one of the two fields, so both stay supported.
func ResolveRole(role, matricule string) Role {
	if strings.EqualFold(strings.TrimSpace(role), string(RoleAdmin)) {
		return RoleAdmin
	}
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(matricule)), MatriculeAdminPrefix) {
		return RoleAdmin
	}
	return RoleStudent
}

// IsAdmin reports whether the user resolves to the administrator role.
func (u *User) IsAdmin() bool {
	return ResolveRole(string(u.Role), u.Matricule) == RoleAdmin
}
