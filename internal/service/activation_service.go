package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/activation"
	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/mail"
	"github.com/simplon-hub/code-hub/internal/repository"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// CodeStore is the subset of the activation store the service needs.
// Declared here so tests can swap in a fake.
type CodeStore interface {
	Put(ctx context.Context, email string, pending activation.PendingCode) error
	Get(ctx context.Context, email string) (activation.PendingCode, bool, error)
	MarkVerified(ctx context.Context, email string) error
	IsVerified(ctx context.Context, email string) (bool, error)
	Clear(ctx context.Context, email string) error
}

// ActivationService drives the three-step account activation flow:
// send-code, verify-code, finalize. Each step refuses to run if the
// previous one has not succeeded for that email.
type ActivationService struct {
	users      repository.UserRepository
	codes      CodeStore
	mailer     mail.Mailer
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// NewActivationService builds the service.
func NewActivationService(users repository.UserRepository, codes CodeStore, mailer mail.Mailer, dispatcher events.Dispatcher, bcryptCost int, logger *zap.Logger) *ActivationService {
	return &ActivationService{
		users:      users,
		codes:      codes,
		mailer:     mailer,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// SendCode validates the identification step, then generates, stores and
// emails a one-time code. Re-invoking overwrites any pending code.
func (s *ActivationService) SendCode(ctx context.Context, matricule, email string) error {
	matricule = domain.NormalizeMatricule(matricule)
	email = domain.NormalizeEmail(email)

	if !domain.ValidMatricule(matricule) {
		return apperrors.NewValidationError("Format invalide. Utilisez AD-xxx ou MAT-xxx (ex: AD-123 ou MAT-456)", nil)
	}
	if !domain.ValidEmail(email) {
		return apperrors.NewValidationError("Veuillez entrer un email valide !", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("Un compte existe déjà pour cet email", nil)
	} else if err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}
	if _, err := s.users.GetByMatricule(ctx, matricule); err == nil {
		return apperrors.NewConflict("Ce matricule est déjà activé", nil)
	} else if err != pgx.ErrNoRows {
		return apperrors.MapError(err)
	}

	code, err := activation.GenerateCode()
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.codes.Put(ctx, email, activation.PendingCode{Code: code, Matricule: matricule}); err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := s.mailer.SendActivationCode(ctx, email, code); err != nil {
		return apperrors.NewDomainError("MAIL_FAILED", err.Error(), 500, nil)
	}
	return nil
}

// VerifyCode checks the submitted code against the pending one and marks
// the email verified on success.
func (s *ActivationService) VerifyCode(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)
	code = domain.NormalizeCode(code)

	if !domain.ValidCode(code) {
		return apperrors.NewValidationError("Le code doit contenir 6 chiffres", nil)
	}

	pending, found, err := s.codes.Get(ctx, email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if !found || pending.Code != code {
		return apperrors.NewValidationError("Code incorrect", nil)
	}

	if err := s.codes.MarkVerified(ctx, email); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// Activate finalizes the account once the email has been verified. The
// role derives from the matricule prefix; the pending keys are deleted so
// the code cannot be replayed.
func (s *ActivationService) Activate(ctx context.Context, matricule, email, pseudo, password string) (*domain.User, error) {
	matricule = domain.NormalizeMatricule(matricule)
	email = domain.NormalizeEmail(email)

	if !domain.ValidMatricule(matricule) {
		return nil, apperrors.NewValidationError("Format invalide. Exemple: AD-123", nil)
	}
	if !domain.ValidPseudo(pseudo) {
		return nil, apperrors.NewValidationError("Le pseudo doit contenir au moins 3 caractères", nil)
	}
	if !domain.ValidPassword(password) {
		return nil, apperrors.NewValidationError("Le mot de passe doit contenir au moins 6 caractères", nil)
	}

	verified, err := s.codes.IsVerified(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !verified {
		return nil, apperrors.NewForbidden("Email non vérifié")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Matricule:    matricule,
		Email:        email,
		Pseudo:       pseudo,
		PasswordHash: hash,
		Role:         domain.ResolveRole("", matricule),
		Actif:        true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.codes.Clear(ctx, email); err != nil {
		s.logger.Warn("failed to clear activation keys", zap.String("email", email), zap.Error(err))
	}

	s.publish(ctx, events.EventAccountActivated, user.ID, user.Pseudo,
		"Activation du compte",
		fmt.Sprintf("%s a activé son compte (%s)", user.Pseudo, user.Matricule))
	return user, nil
}

func (s *ActivationService) publish(ctx context.Context, typ events.EventType, userID, userName, action, details string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Actor:     events.Actor{UserID: userID, UserName: userName},
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	})
}
