package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/config"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/repository"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// LoginResult bundles everything the login endpoint returns.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
	Redirect  string
}

// AuthService coordinates login, logout and profile updates.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware construction.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates by email or pseudo and issues a role-bearing token.
// The redirect hint mirrors the role split the clients expect.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	identifier = strings.ToLower(strings.TrimSpace(identifier))
	password = strings.TrimSpace(password)
	if identifier == "" || password == "" {
		return nil, apperrors.NewValidationError("identifiant et mot de passe requis", nil)
	}

	user, err := s.users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("Identifiants incorrects")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("Identifiants incorrects")
	}
	if !user.Actif {
		return nil, apperrors.NewForbidden("Compte désactivé")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	redirect := "/dashboard"
	if domain.ResolveRole(string(user.Role), user.Matricule) == domain.RoleAdmin {
		redirect = "/admin"
	}

	s.publish(ctx, events.EventUserLoggedIn, user,
		"Connexion", fmt.Sprintf("%s s'est connecté", user.Pseudo))

	return &LoginResult{User: user, Token: token, ExpiresAt: exp, Redirect: redirect}, nil
}

// Logout only records the event; tokens are stateless.
func (s *AuthService) Logout(ctx context.Context, user *domain.User) {
	s.publish(ctx, events.EventUserLoggedOut, user,
		"Déconnexion", fmt.Sprintf("%s s'est déconnecté", user.Pseudo))
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	Pseudo   *string
	Prenom   *string
	Nom      *string
	Password *string
}

// UpdateProfile applies a partial profile update and returns the
// refetched authoritative record.
func (s *AuthService) UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFoundMessage("Utilisateur introuvable")
		}
		return nil, apperrors.MapError(err)
	}

	if update.Pseudo != nil {
		if !domain.ValidPseudo(*update.Pseudo) {
			return nil, apperrors.NewValidationError("Le pseudo doit contenir au moins 3 caractères", nil)
		}
		user.Pseudo = strings.TrimSpace(*update.Pseudo)
	}
	if update.Prenom != nil {
		user.Prenom = strings.TrimSpace(*update.Prenom)
	}
	if update.Nom != nil {
		user.Nom = strings.TrimSpace(*update.Nom)
	}
	if update.Password != nil {
		if !domain.ValidPassword(*update.Password) {
			return nil, apperrors.NewValidationError("Le mot de passe doit contenir au moins 6 caractères", nil)
		}
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) publish(ctx context.Context, typ events.EventType, user *domain.User, action, details string) {
	if s.dispatcher == nil || user == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Actor:     events.Actor{UserID: user.ID, UserName: user.Pseudo},
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
