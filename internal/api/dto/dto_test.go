package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simplon-hub/code-hub/internal/domain"
)

func TestNewUserResponseNormalizesRole(t *testing.T) {
	// legacy admin with no explicit role value
	resp := NewUserResponse(&domain.User{ID: "u1", Matricule: "AD-1"})
	require.Equal(t, "admin", resp.Role)

	resp = NewUserResponse(&domain.User{ID: "u2", Matricule: "MAT-7", Role: domain.RoleStudent})
	require.Equal(t, "stagiaire", resp.Role)
}

func TestUserResponseOmitsPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           "u1",
		Matricule:    "MAT-7",
		Email:        "marie@simplon.co",
		Pseudo:       "marie",
		PasswordHash: "$2a$10$secret",
		Actif:        true,
	}

	raw, err := json.Marshal(NewUserResponse(user))
	require.NoError(t, err)
	require.NotContains(t, string(raw), "secret")
	require.Contains(t, string(raw), `"dateInscription"`)
}

func TestProjectResponseWireShape(t *testing.T) {
	project := &domain.Project{
		ID:           "p1",
		Titre:        "Alpha",
		Categorie:    domain.CategoryFrontend,
		AuteurID:     "u1",
		AuteurNom:    "marie",
		DateCreation: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Taille:       "1.2 MB",
		FilePath:     "archives/p1.zip",
	}

	raw, err := json.Marshal(NewProjectResponse(project))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// French wire keys, nil slices as empty arrays, no storage key
	require.Equal(t, "Alpha", decoded["titre"])
	require.Equal(t, "marie", decoded["auteurNom"])
	require.Equal(t, []any{}, decoded["technologies"])
	require.Equal(t, []any{}, decoded["images"])
	require.NotContains(t, decoded, "filePath")
}

func TestNewProjectListEmpty(t *testing.T) {
	raw, err := json.Marshal(NewProjectList(nil))
	require.NoError(t, err)
	require.JSONEq(t, "[]", string(raw))
}
