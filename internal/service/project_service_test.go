package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/catalog"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/events"
)

func newProjectFixture() (*ProjectService, *fakeProjectRepo, *fakeStore) {
	repo := newFakeProjectRepo()
	store := &fakeStore{blobs: map[string]string{}}
	svc := NewProjectService(repo, store, events.NewInMemoryDispatcher(), zap.NewNop())
	return svc, repo, store
}

func submission() ProjectSubmission {
	return ProjectSubmission{
		Titre:        "Mon Projet",
		Description:  "Une description",
		Technologies: []string{"React", "react", "Node"},
		Archive:      strings.NewReader("zip-bytes"),
		ArchiveName:  "projet.zip",
		Images: []ImageUpload{
			{Name: "capture.png", Reader: strings.NewReader("png")},
		},
	}
}

func TestProjectCreate(t *testing.T) {
	svc, repo, store := newProjectFixture()
	author := &domain.User{ID: "u1", Pseudo: "marie"}

	project, err := svc.Create(context.Background(), author, submission())
	require.NoError(t, err)

	require.Equal(t, "Mon Projet", project.Titre)
	require.Equal(t, domain.CategoryFrontend, project.Categorie)
	require.Equal(t, []string{"React", "Node"}, project.Technologies)
	require.Equal(t, "u1", project.AuteurID)
	require.Equal(t, "marie", project.AuteurNom)
	require.Equal(t, "0.0 MB", project.Taille)
	require.Len(t, project.Images, 1)

	require.Contains(t, store.blobs, project.FilePath)
	_, ok := repo.projects[project.ID]
	require.True(t, ok)
}

func TestProjectCreateValidation(t *testing.T) {
	svc, _, _ := newProjectFixture()
	author := &domain.User{ID: "u1", Pseudo: "marie"}
	ctx := context.Background()

	sub := submission()
	sub.Titre = "  "
	_, err := svc.Create(ctx, author, sub)
	requireDomainCode(t, err, "VALIDATION_FAILED")

	sub = submission()
	sub.Description = ""
	_, err = svc.Create(ctx, author, sub)
	requireDomainCode(t, err, "VALIDATION_FAILED")

	sub = submission()
	sub.Archive = nil
	_, err = svc.Create(ctx, author, sub)
	requireDomainCode(t, err, "VALIDATION_FAILED")

	sub = submission()
	sub.Categorie = domain.ProjectCategory("devops")
	_, err = svc.Create(ctx, author, sub)
	requireDomainCode(t, err, "VALIDATION_FAILED")
}

func TestProjectBrowse(t *testing.T) {
	svc, _, _ := newProjectFixture()
	author := &domain.User{ID: "u1", Pseudo: "marie"}
	ctx := context.Background()

	sub := submission()
	sub.Titre = "Alpha"
	_, err := svc.Create(ctx, author, sub)
	require.NoError(t, err)

	sub = submission()
	sub.Titre = "Beta"
	sub.Archive = strings.NewReader("zip")
	sub.Images = nil
	_, err = svc.Create(ctx, author, sub)
	require.NoError(t, err)

	got, err := svc.Browse(ctx, catalog.Query{Text: "alpha"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Alpha", got[0].Titre)
}

func TestProjectDeleteAuthorization(t *testing.T) {
	svc, repo, store := newProjectFixture()
	owner := &domain.User{ID: "u1", Pseudo: "marie"}
	ctx := context.Background()

	project, err := svc.Create(ctx, owner, submission())
	require.NoError(t, err)

	// another student cannot delete
	stranger := &auth.Principal{User: &domain.User{ID: "u2"}, Role: domain.RoleStudent}
	requireDomainCode(t, svc.Delete(ctx, stranger, project.ID), "FORBIDDEN")

	// the owner can, and the blobs go with it
	caller := &auth.Principal{User: owner, Role: domain.RoleStudent}
	require.NoError(t, svc.Delete(ctx, caller, project.ID))
	require.Empty(t, repo.projects)
	require.NotContains(t, store.blobs, project.FilePath)

	requireDomainCode(t, svc.Delete(ctx, caller, project.ID), "NOT_FOUND")
}

func TestProjectDeleteByAdmin(t *testing.T) {
	svc, repo, _ := newProjectFixture()
	owner := &domain.User{ID: "u1", Pseudo: "marie"}
	ctx := context.Background()

	project, err := svc.Create(ctx, owner, submission())
	require.NoError(t, err)

	admin := &auth.Principal{User: &domain.User{ID: "a1", Pseudo: "chief"}, Role: domain.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, admin, project.ID))
	require.Empty(t, repo.projects)
}
