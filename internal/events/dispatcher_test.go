package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDispatcherRoutesByType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var logins, downloads []Event
	d.Subscribe(EventUserLoggedIn, func(_ context.Context, e Event) error {
		logins = append(logins, e)
		return nil
	})
	d.Subscribe(EventArchiveDownload, func(_ context.Context, e Event) error {
		downloads = append(downloads, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{
		ID:        "e1",
		Type:      EventUserLoggedIn,
		Actor:     Actor{UserID: "u1", UserName: "marie"},
		Action:    "Connexion",
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, logins, 1)
	require.Equal(t, "marie", logins[0].Actor.UserName)
	require.Empty(t, downloads)
}

func TestDispatcherFailingHandlerDoesNotBlockOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventProjectCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventProjectCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventProjectCreated}))
	require.True(t, called)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserDeleted}))
}
