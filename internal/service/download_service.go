package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/archive"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/observability"
	"github.com/simplon-hub/code-hub/internal/repository"
	"github.com/simplon-hub/code-hub/internal/storage"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// ArchiveStream is a ready-to-serve archive download.
type ArchiveStream struct {
	Reader   io.ReadCloser
	Filename string
}

// DownloadService streams archives and tracks downloads. Tracking is a
// side effect: its failure never affects the served file.
type DownloadService struct {
	projects   repository.ProjectRepository
	downloads  repository.DownloadRepository
	store      storage.Store
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewDownloadService builds the service.
func NewDownloadService(projects repository.ProjectRepository, downloads repository.DownloadRepository, store storage.Store, dispatcher events.Dispatcher, metrics *observability.Metrics, logger *zap.Logger) *DownloadService {
	return &DownloadService{
		projects:   projects,
		downloads:  downloads,
		store:      store,
		dispatcher: dispatcher,
		metrics:    metrics,
		logger:     logger,
	}
}

// Stream opens the project archive and records the download for the given
// user id ("anonymous" when absent). The record is written before the
// body is streamed but its failure is logged and swallowed.
func (s *DownloadService) Stream(ctx context.Context, projectID, userID string) (*ArchiveStream, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, apperrors.NewNotFoundMessage("Projet introuvable")
	}
	if project.FilePath == "" {
		return nil, apperrors.NewNotFoundMessage("Fichier introuvable")
	}

	reader, err := s.store.Open(ctx, project.FilePath)
	if err != nil {
		return nil, apperrors.NewNotFoundMessage("Fichier introuvable")
	}

	if err := s.record(ctx, project, userID); err != nil {
		s.logger.Warn("failed to record download",
			zap.String("project_id", projectID),
			zap.String("user_id", userID),
			zap.Error(err))
	}

	s.metrics.RecordDownload()
	return &ArchiveStream{
		Reader:   reader,
		Filename: archive.ArchiveName(project.Titre),
	}, nil
}

// Record is the explicit record-download endpoint behavior.
func (s *DownloadService) Record(ctx context.Context, projectID, userID string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return apperrors.NewNotFoundMessage("Projet introuvable")
	}
	if err := s.record(ctx, project, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// MyDownloads returns the user's download history joined with projects.
func (s *DownloadService) MyDownloads(ctx context.Context, userID string) ([]domain.DownloadEntry, error) {
	entries, err := s.downloads.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// AllDownloads backs the admin export.
func (s *DownloadService) AllDownloads(ctx context.Context) ([]domain.DownloadEntry, error) {
	entries, err := s.downloads.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *DownloadService) record(ctx context.Context, project *domain.Project, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = domain.AnonymousUserID
	}

	download := &domain.Download{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: project.ID,
	}
	if err := s.downloads.Create(ctx, download); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventArchiveDownload,
			Actor:     events.Actor{UserID: userID},
			Action:    "Téléchargement",
			Details:   fmt.Sprintf("Téléchargement du projet « %s »", project.Titre),
			Timestamp: time.Now(),
		})
	}
	return nil
}
