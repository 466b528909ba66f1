package domain

import "time"

// AnonymousUserID is recorded when a download is triggered without a session.
const AnonymousUserID = "anonymous"

// Download is an append-only record of one archive download.
type Download struct {
	ID                 string
	UserID             string
	ProjectID          string
	DateTelechargement time.Time
}

// DownloadEntry is a download joined with its project for "my downloads".
type DownloadEntry struct {
	Download
	Titre        string
	Taille       string
	Technologies []string
}
