package dto

import (
	"time"

	"github.com/simplon-hub/code-hub/internal/domain"
)

// ActivityResponse is one classified feed entry.
type ActivityResponse struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	UserName  string `json:"user_name"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

// NewActivityList maps feed entries, classification included.
func NewActivityList(activities []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		out = append(out, ActivityResponse{
			ID:        a.ID,
			Action:    a.Action,
			Details:   a.Details,
			UserName:  a.UserName,
			Type:      string(a.Type()),
			CreatedAt: a.CreatedAt.Format(time.RFC3339),
		})
	}
	return out
}

// NewUserList maps accounts for the admin listing.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
