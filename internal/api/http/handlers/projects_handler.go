package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/api/dto"
	"github.com/simplon-hub/code-hub/internal/archive"
	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/catalog"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/observability"
	"github.com/simplon-hub/code-hub/internal/service"
)

// ProjectsHandler exposes the catalog and submission endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
	metrics  *observability.Metrics
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projectService *service.ProjectService, metrics *observability.Metrics) *ProjectsHandler {
	return &ProjectsHandler{projects: projectService, metrics: metrics}
}

// List handles GET /api/projects with optional q, categorie, tech and
// sort query parameters.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	query := catalog.Query{
		Text:       c.Query("q"),
		Categorie:  domain.ProjectCategory(c.Query("categorie")),
		Technology: c.Query("tech"),
		Sort:       catalog.SortOrder(c.Query("sort")),
	}

	projects, err := h.projects.Browse(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"projects": dto.NewProjectList(projects)})
}

// ListByUser handles GET /api/projects/user/:id.
func (h *ProjectsHandler) ListByUser(c *fiber.Ctx) error {
	projects, err := h.projects.ListByAuthor(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"projects": dto.NewProjectList(projects)})
}

// Get handles GET /api/projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	project, err := h.projects.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"project": dto.NewProjectResponse(project)})
}

// Create handles POST /api/projects (multipart). Technologies and images
// arrive as repeated fields; the archive under "file".
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "multipart form attendu")
	}

	sub := service.ProjectSubmission{
		Titre:        formValue(form.Value, "titre"),
		Description:  formValue(form.Value, "description"),
		Categorie:    domain.ProjectCategory(formValue(form.Value, "categorie")),
		Technologies: form.Value["technologies"],
	}

	if files := form.File["file"]; len(files) > 0 {
		f, err := files[0].Open()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "archive illisible")
		}
		defer f.Close()
		sub.Archive = f
		sub.ArchiveName = files[0].Filename
	}

	for _, header := range form.File["images"] {
		img, err := header.Open()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "image illisible")
		}
		defer img.Close()
		sub.Images = append(sub.Images, service.ImageUpload{Name: header.Filename, Reader: img})
	}

	project, err := h.projects.Create(c.Context(), principal.User, sub)
	if err != nil {
		return err
	}

	h.metrics.RecordUpload()
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Projet créé",
		"project": dto.NewProjectResponse(project),
	})
}

// AssembleArchive handles POST /api/projects/archive: repeated "files"
// parts whose filenames are relative paths, zipped server-side for
// clients that picked a folder instead of an archive.
func (h *ProjectsHandler) AssembleArchive(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "multipart form attendu")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return fiber.NewError(http.StatusBadRequest, "aucun fichier fourni")
	}

	entries := make([]archive.Entry, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, "fichier illisible: "+header.Filename)
		}
		defer f.Close()
		entries = append(entries, archive.Entry{Path: header.Filename, Reader: f})
	}

	blob, err := archive.Assemble(entries)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "échec de la création de l'archive")
	}

	name := archive.ArchiveName(formValue(form.Value, "titre"))
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Send(blob)
}

// Delete handles DELETE /api/projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.projects.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Projet supprimé"})
}

func formValue(values map[string][]string, key string) string {
	if v := values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
