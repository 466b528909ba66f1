package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountActivated EventType = "account_activated"
	EventUserLoggedIn     EventType = "user_logged_in"
	EventUserLoggedOut    EventType = "user_logged_out"
	EventProjectCreated   EventType = "project_created"
	EventProjectDeleted   EventType = "project_deleted"
	EventUserDeleted      EventType = "user_deleted"
	EventArchiveDownload  EventType = "archive_downloaded"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// Event represents a domain event emitted by services. Action and Details
// carry the human-readable feed text; the activity recorder persists them.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Actor     Actor     `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}
