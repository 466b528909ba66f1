package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/repository"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// AdminService covers the administrator-only user management surface.
type AdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(users repository.UserRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, dispatcher: dispatcher}
}

// ListUsers returns every account, newest first.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ToggleStatus flips the actif flag and returns the refetched record, so
// callers render authoritative state rather than their own mutation.
func (s *AdminService) ToggleStatus(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFoundMessage("Utilisateur introuvable")
		}
		return nil, apperrors.MapError(err)
	}

	if err := s.users.SetActive(ctx, id, !user.Actif); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.users.GetByID(ctx, id)
}

// DeleteUser removes an account.
func (s *AdminService) DeleteUser(ctx context.Context, admin *domain.User, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFoundMessage("Utilisateur introuvable")
		}
		return apperrors.MapError(err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserDeleted,
			Actor:     events.Actor{UserID: admin.ID, UserName: admin.Pseudo},
			Action:    "Suppression du compte",
			Details:   fmt.Sprintf("%s a supprimé le compte %s (%s)", admin.Pseudo, user.Pseudo, user.Matricule),
			Timestamp: time.Now(),
		})
	}
	return nil
}
