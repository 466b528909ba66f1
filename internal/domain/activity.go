package domain

import (
	"strings"
	"time"
)

// ActivityType buckets free-text actions for the notification feed.
type ActivityType string

const (
	ActivityActivation ActivityType = "activation"
	ActivityProject    ActivityType = "project"
	ActivityDownload   ActivityType = "download"
	ActivityLogin      ActivityType = "login"
	ActivityLogout     ActivityType = "logout"
	ActivityDelete     ActivityType = "delete"
	ActivitySystem     ActivityType = "system"
)

// Activity is one entry of the admin notification feed.
type Activity struct {
	ID        string
	Action    string
	Details   string
	UserName  string
	CreatedAt time.Time
}

// activityKeywords maps substrings of the free-text action to a bucket.
// French keywords come from the historical feed, English ones from newer
// backend-emitted actions; both are matched case-insensitively. Order
// matters: "déconnexion" contains "connexion" and "téléchargement du
// projet" contains "projet", so the more specific buckets come first.
var activityKeywords = []struct {
	words []string
	kind  ActivityType
}{
	{[]string{"inscription", "activation"}, ActivityActivation},
	{[]string{"déconnexion", "logout"}, ActivityLogout},
	{[]string{"connexion", "login"}, ActivityLogin},
	{[]string{"téléchargement", "download"}, ActivityDownload},
	{[]string{"suppression", "delete"}, ActivityDelete},
	{[]string{"projet", "créé", "upload", "project"}, ActivityProject},
}

// ClassifyActivity derives the feed bucket from the free-text action.
// Unmatched actions fall back to the system bucket.
func ClassifyActivity(action string) ActivityType {
	lower := strings.ToLower(action)
	for _, entry := range activityKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.kind
			}
		}
	}
	return ActivitySystem
}

// Type returns the classified bucket of the activity.
func (a *Activity) Type() ActivityType {
	return ClassifyActivity(a.Action)
}
