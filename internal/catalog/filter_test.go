package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/simplon-hub/code-hub/internal/domain"
)

func sampleProjects() []domain.Project {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []domain.Project{
		{
			ID:           "1",
			Titre:        "Alpha",
			Description:  "Tableau de bord",
			Categorie:    domain.CategoryFrontend,
			Technologies: []string{"React", "Vite"},
			AuteurNom:    "Marie",
			DateCreation: base,
		},
		{
			ID:           "2",
			Titre:        "Beta",
			Description:  "API de gestion",
			Categorie:    domain.CategoryBackend,
			Technologies: []string{"Vue", "Node"},
			AuteurNom:    "Paul",
			DateCreation: base.Add(24 * time.Hour),
		},
		{
			ID:           "3",
			Titre:        "gamma",
			Description:  "Application mobile",
			Categorie:    domain.CategoryMobile,
			Technologies: []string{"Flutter"},
			AuteurNom:    "Marie",
			DateCreation: base.Add(48 * time.Hour),
		},
	}
}

func ids(projects []domain.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestFilterText(t *testing.T) {
	projects := sampleProjects()

	// matches titre
	require.Equal(t, []string{"1"}, ids(Filter(projects, Query{Text: "alpha"})))
	// matches technologies
	require.Equal(t, []string{"1"}, ids(Filter(projects, Query{Text: "react"})))
	// matches auteurNom, newest first by default
	require.Equal(t, []string{"3", "1"}, ids(Filter(projects, Query{Text: "marie"})))
	// matches description
	require.Equal(t, []string{"2"}, ids(Filter(projects, Query{Text: "gestion"})))
}

func TestFilterCategoryAndTechnology(t *testing.T) {
	projects := sampleProjects()

	require.Equal(t, []string{"2"}, ids(Filter(projects, Query{Categorie: domain.CategoryBackend})))
	require.Equal(t, []string{"2"}, ids(Filter(projects, Query{Technology: "vue"})))

	// technology is an exact match, not a substring
	require.Empty(t, Filter(projects, Query{Technology: "vu"}))
}

func TestFilterComposesWithAnd(t *testing.T) {
	projects := sampleProjects()

	// "Alpha" exists and Vue exists, but not together
	require.Empty(t, Filter(projects, Query{Text: "alpha", Technology: "Vue"}))

	got := Filter(projects, Query{Text: "marie", Categorie: domain.CategoryMobile})
	require.Equal(t, []string{"3"}, ids(got))
}

func TestFilterSorting(t *testing.T) {
	projects := sampleProjects()

	// default: newest first
	require.Equal(t, []string{"3", "2", "1"}, ids(Filter(projects, Query{})))

	// name: alphabetical, case-insensitive
	require.Equal(t, []string{"1", "2", "3"}, ids(Filter(projects, Query{Sort: SortByNameAsc})))
}
