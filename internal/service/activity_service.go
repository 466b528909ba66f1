package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
	"github.com/simplon-hub/code-hub/internal/repository"
	apperrors "github.com/simplon-hub/code-hub/pkg/util"
)

// ActivityService records domain events into the notification feed and
// serves the admin feed views.
type ActivityService struct {
	activities repository.ActivityRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewActivityService builds the service.
func NewActivityService(activities repository.ActivityRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ActivityService {
	return &ActivityService{activities: activities, dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes the recorder to every feed-worthy event.
func (s *ActivityService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	for _, typ := range []events.EventType{
		events.EventAccountActivated,
		events.EventUserLoggedIn,
		events.EventUserLoggedOut,
		events.EventProjectCreated,
		events.EventProjectDeleted,
		events.EventUserDeleted,
		events.EventArchiveDownload,
	} {
		s.dispatcher.Subscribe(typ, s.recordEvent)
	}
}

func (s *ActivityService) recordEvent(ctx context.Context, event events.Event) error {
	activity := &domain.Activity{
		ID:       uuid.NewString(),
		Action:   event.Action,
		Details:  event.Details,
		UserName: event.Actor.UserName,
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}

// List returns the feed, newest first, optionally restricted to one
// classified bucket.
func (s *ActivityService) List(ctx context.Context, typeFilter domain.ActivityType) ([]domain.Activity, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if typeFilter == "" {
		return activities, nil
	}

	filtered := make([]domain.Activity, 0, len(activities))
	for _, a := range activities {
		if a.Type() == typeFilter {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Delete removes one feed entry.
func (s *ActivityService) Delete(ctx context.Context, id string) error {
	if err := s.activities.Delete(ctx, id); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFoundMessage("Notification introuvable")
		}
		return apperrors.MapError(err)
	}
	return nil
}

// Clear empties the feed.
func (s *ActivityService) Clear(ctx context.Context) error {
	if err := s.activities.DeleteAll(ctx); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
