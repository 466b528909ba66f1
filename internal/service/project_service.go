package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/catalog"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/repository"
	"github.com/simplon-hub/code-hub/internal/storage"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// ProjectSubmission is the parsed multipart payload of a create request.
type ProjectSubmission struct {
	Titre        string
	Description  string
	Categorie    domain.ProjectCategory
	Technologies []string
	Archive      io.Reader
	ArchiveName  string
	Images       []ImageUpload
}

// ImageUpload is one optional illustration file.
type ImageUpload struct {
	Name   string
	Reader io.Reader
}

// ProjectService owns project lifecycle: submission, browsing, deletion.
type ProjectService struct {
	projects   repository.ProjectRepository
	store      storage.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewProjectService builds the service.
func NewProjectService(projects repository.ProjectRepository, store storage.Store, dispatcher events.Dispatcher, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, store: store, dispatcher: dispatcher, logger: logger}
}

// Create validates and persists a submission. The archive is mandatory;
// stored blobs are cleaned up if the database insert fails.
func (s *ProjectService) Create(ctx context.Context, author *domain.User, sub ProjectSubmission) (*domain.Project, error) {
	titre := strings.TrimSpace(sub.Titre)
	if titre == "" {
		return nil, apperrors.NewValidationError("Le titre est obligatoire", nil)
	}
	if strings.TrimSpace(sub.Description) == "" {
		return nil, apperrors.NewValidationError("La description est obligatoire", nil)
	}
	if sub.Archive == nil {
		return nil, apperrors.NewValidationError("L'archive du projet est obligatoire", nil)
	}
	if sub.Categorie == "" {
		sub.Categorie = domain.CategoryFrontend
	}
	if !domain.ValidCategory(sub.Categorie) {
		return nil, apperrors.NewValidationError("Catégorie inconnue", nil)
	}

	archiveKey, size, err := s.store.Save(ctx, storage.KindArchive, sub.ArchiveName, sub.Archive)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	imageKeys := make([]string, 0, len(sub.Images))
	for _, img := range sub.Images {
		key, _, err := s.store.Save(ctx, storage.KindImage, img.Name, img.Reader)
		if err != nil {
			s.cleanupBlobs(ctx, archiveKey, imageKeys)
			return nil, apperrors.NewInternalError(err)
		}
		imageKeys = append(imageKeys, key)
	}

	project := &domain.Project{
		ID:           uuid.NewString(),
		Titre:        titre,
		Description:  strings.TrimSpace(sub.Description),
		Categorie:    sub.Categorie,
		Technologies: domain.DedupTechnologies(sub.Technologies),
		AuteurID:     author.ID,
		AuteurNom:    author.Pseudo,
		Taille:       storage.HumanSize(size),
		Images:       imageKeys,
		FilePath:     archiveKey,
	}
	if err := s.projects.Create(ctx, project); err != nil {
		s.cleanupBlobs(ctx, archiveKey, imageKeys)
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventProjectCreated, author,
		"Projet créé", fmt.Sprintf("%s a publié le projet « %s »", author.Pseudo, project.Titre))
	return project, nil
}

// Browse fetches the whole collection then applies the catalog filters.
func (s *ProjectService) Browse(ctx context.Context, q catalog.Query) ([]domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return catalog.Filter(projects, q), nil
}

// ListByAuthor returns one user's projects, newest first.
func (s *ProjectService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Project, error) {
	projects, err := s.projects.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return projects, nil
}

// Get fetches one project.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFoundMessage("Projet introuvable")
		}
		return nil, apperrors.MapError(err)
	}
	return project, nil
}

// Delete removes a project. Only the owner or an admin may delete; blob
// removal is best-effort.
func (s *ProjectService) Delete(ctx context.Context, caller *auth.Principal, id string) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleAdmin && caller.User.ID != project.AuteurID {
		return apperrors.NewForbidden("seul l'auteur ou un administrateur peut supprimer ce projet")
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	s.cleanupBlobs(ctx, project.FilePath, project.Images)

	s.publish(ctx, events.EventProjectDeleted, caller.User,
		"Suppression du projet", fmt.Sprintf("%s a supprimé le projet « %s »", caller.User.Pseudo, project.Titre))
	return nil
}

func (s *ProjectService) cleanupBlobs(ctx context.Context, archiveKey string, imageKeys []string) {
	if archiveKey != "" {
		if err := s.store.Delete(ctx, archiveKey); err != nil {
			s.logger.Warn("failed to delete archive blob", zap.String("key", archiveKey), zap.Error(err))
		}
	}
	for _, key := range imageKeys {
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete image blob", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *ProjectService) publish(ctx context.Context, typ events.EventType, user *domain.User, action, details string) {
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
