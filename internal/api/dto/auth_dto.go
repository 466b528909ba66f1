package dto

import (
	"time"

	"github.com/simplon-hub/code-hub/internal/domain"
)

// SendCodeRequest starts the activation wizard.
type SendCodeRequest struct {
	Matricule string `json:"matricule"`
	Email     string `json:"email"`
}

// VerifyCodeRequest checks the emailed code.
type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ActivationRequest finalizes the account. Confirmation is optional on
// the wire; when present it must equal the password.
type ActivationRequest struct {
	Matricule    string `json:"matricule"`
	Email        string `json:"email"`
	Pseudo       string `json:"pseudo"`
	Password     string `json:"password"`
	Confirmation string `json:"confirmation,omitempty"`
}

// LoginRequest is the credential exchange payload; identifier is an email
// or a pseudo.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the user projection served to clients. The password
// hash never appears here.
type UserResponse struct {
	ID              string `json:"id"`
	Matricule       string `json:"matricule"`
	Email           string `json:"email"`
	Pseudo          string `json:"pseudo"`
	Prenom          string `json:"prenom,omitempty"`
	Nom             string `json:"nom,omitempty"`
	Role            string `json:"role"`
	Actif           bool   `json:"actif"`
	DateInscription string `json:"dateInscription"`
}

// NewUserResponse maps a domain user onto the wire shape with the role
// already normalized.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Matricule:       u.Matricule,
		Email:           u.Email,
		Pseudo:          u.Pseudo,
		Prenom:          u.Prenom,
		Nom:             u.Nom,
		Role:            string(domain.ResolveRole(string(u.Role), u.Matricule)),
		Actif:           u.Actif,
		DateInscription: u.DateInscription.Format(time.RFC3339),
	}
}

// ProfileUpdateRequest carries the PATCH-able profile fields.
type ProfileUpdateRequest struct {
	Pseudo   *string `json:"pseudo,omitempty"`
	Prenom   *string `json:"prenom,omitempty"`
	Nom      *string `json:"nom,omitempty"`
	Password *string `json:"password,omitempty"`
}
