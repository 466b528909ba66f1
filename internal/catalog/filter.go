package catalog

import (
	"sort"
	"strings"

	"github.com/simplon-hub/code-hub/internal/domain"
)

// SortOrder selects how filtered projects are ordered.
type SortOrder string

const (
	SortByDateDesc SortOrder = "date"
	SortByNameAsc  SortOrder = "name"
)

// Query captures the browse filters. Text matches titre, description,
// auteurNom and technologies as a case-insensitive substring; Categorie
// and Technology are exact matches. Filters compose with AND.
type Query struct {
	Text       string
	Categorie  domain.ProjectCategory
	Technology string
	Sort       SortOrder
}

// Filter applies the query over the full fetched collection. Linear scans
// on purpose: collections are small and this mirrors the historical
// browse behavior exactly.
func Filter(projects []domain.Project, q Query) []domain.Project {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	tech := strings.ToLower(strings.TrimSpace(q.Technology))

	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if text != "" && !matchesText(&p, text) {
			continue
		}
		if q.Categorie != "" && p.Categorie != q.Categorie {
			continue
		}
		if tech != "" && !hasTechnology(&p, tech) {
			continue
		}
		out = append(out, p)
	}

	sortProjects(out, q.Sort)
	return out
}

func matchesText(p *domain.Project, text string) bool {
	if strings.Contains(strings.ToLower(p.Titre), text) ||
		strings.Contains(strings.ToLower(p.Description), text) ||
		strings.Contains(strings.ToLower(p.AuteurNom), text) {
		return true
	}
	for _, t := range p.Technologies {
		if strings.Contains(strings.ToLower(t), text) {
			return true
		}
	}
	return false
}

func hasTechnology(p *domain.Project, tech string) bool {
	for _, t := range p.Technologies {
		if strings.ToLower(t) == tech {
			return true
		}
	}
	return false
}

func sortProjects(projects []domain.Project, order SortOrder) {
	switch order {
	case SortByNameAsc:
		sort.SliceStable(projects, func(i, j int) bool {
			return strings.ToLower(projects[i].Titre) < strings.ToLower(projects[j].Titre)
		})
	default:
		sort.SliceStable(projects, func(i, j int) bool {
			return projects[i].DateCreation.After(projects[j].DateCreation)
		})
	}
}
