package dto

import (
	"time"

	"github.com/simplon-hub/code-hub/internal/domain"
)

// ProjectResponse is the catalog projection of one project.
type ProjectResponse struct {
	ID           string   `json:"id"`
	Titre        string   `json:"titre"`
	Description  string   `json:"description"`
	Categorie    string   `json:"categorie"`
	Technologies []string `json:"technologies"`
	AuteurID     string   `json:"auteurId"`
	AuteurNom    string   `json:"auteurNom"`
	DateCreation string   `json:"dateCreation"`
	Taille       string   `json:"taille"`
	Images       []string `json:"images"`
}

// NewProjectResponse maps a domain project onto the wire shape. The
// storage key of the archive stays server-side.
func NewProjectResponse(p *domain.Project) ProjectResponse {
	techs := p.Technologies
	if techs == nil {
		techs = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProjectResponse{
		ID:           p.ID,
		Titre:        p.Titre,
		Description:  p.Description,
		Categorie:    string(p.Categorie),
		Technologies: techs,
		AuteurID:     p.AuteurID,
		AuteurNom:    p.AuteurNom,
		DateCreation: p.DateCreation.Format(time.RFC3339),
		Taille:       p.Taille,
		Images:       images,
	}
}

// NewProjectList maps a slice of projects.
func NewProjectList(projects []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, NewProjectResponse(&projects[i]))
	}
	return out
}

// RecordDownloadRequest is the explicit tracking payload.
type RecordDownloadRequest struct {
	UserID    string `json:"userId"`
	ProjectID string `json:"projectId"`
}

// DownloadEntryResponse is one row of "my downloads".
type DownloadEntryResponse struct {
	ID                 string   `json:"id"`
	ProjectID          string   `json:"projectId"`
	Titre              string   `json:"titre"`
	Taille             string   `json:"taille"`
	Technologies       []string `json:"technologies"`
	DateTelechargement string   `json:"dateTelechargement"`
}

// NewDownloadEntryList maps download history rows.
func NewDownloadEntryList(entries []domain.DownloadEntry) []DownloadEntryResponse {
	out := make([]DownloadEntryResponse, 0, len(entries))
	for _, e := range entries {
		techs := e.Technologies
		if techs == nil {
			techs = []string{}
		}
		out = append(out, DownloadEntryResponse{
			ID:                 e.ID,
			ProjectID:          e.ProjectID,
			Titre:              e.Titre,
			Taille:             e.Taille,
			Technologies:       techs,
			DateTelechargement: e.DateTelechargement.Format(time.RFC3339),
		})
	}
	return out
}
