package domain

import (
	"strings"
	"time"
)

// ProjectCategory enumerates submission categories.
type ProjectCategory string

const (
	CategoryFrontend  ProjectCategory = "frontend"
	CategoryBackend   ProjectCategory = "backend"
	CategoryFullstack ProjectCategory = "fullstack"
	CategoryMobile    ProjectCategory = "mobile"
	CategoryOther     ProjectCategory = "other"
)

// ValidCategory reports whether the value is a known category.
func ValidCategory(c ProjectCategory) bool {
	switch c {
	case CategoryFrontend, CategoryBackend, CategoryFullstack, CategoryMobile, CategoryOther:
		return true
	}
	return false
}

// Project is a submitted trainee project. Exactly one owner, one category.
type Project struct {
	ID           string
	Titre        string
	Description  string
	Categorie    ProjectCategory
	Technologies []string
	AuteurID     string
	AuteurNom    string
	DateCreation time.Time
	Taille       string
	Images       []string
	FilePath     string
}

// DedupTechnologies removes case-insensitive duplicates while keeping the
// first spelling and the original order.
func DedupTechnologies(techs []string) []string {
	seen := make(map[string]struct{}, len(techs))
	out := make([]string, 0, len(techs))
	for _, t := range techs {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
