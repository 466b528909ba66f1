package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/api/dto"
	"github.com/simplon-hub/code-hub/internal/service"
	"github.com/simplon-hub/code-hub/internal/storage"
)

// DownloadsHandler serves archives and the tracking endpoints.
type DownloadsHandler struct {
	downloads *service.DownloadService
	store     storage.Store
}

// NewDownloadsHandler constructs handler.
func NewDownloadsHandler(downloadService *service.DownloadService, store storage.Store) *DownloadsHandler {
	return &DownloadsHandler{downloads: downloadService, store: store}
}

// DownloadFile handles GET /api/download-file/:id?user=. The user query
// parameter feeds tracking only; streaming never depends on it.
func (h *DownloadsHandler) DownloadFile(c *fiber.Ctx) error {
	stream, err := h.downloads.Stream(c.Context(), c.Params("id"), c.Query("user"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+stream.Filename+`"`)
	return c.SendStream(stream.Reader)
}

// RecordDownload handles POST /api/record-download.
func (h *DownloadsHandler) RecordDownload(c *fiber.Ctx) error {
	var req dto.RecordDownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.ProjectID == "" {
		return fiber.NewError(http.StatusBadRequest, "projectId requis")
	}

	if err := h.downloads.Record(c.Context(), req.ProjectID, req.UserID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Téléchargement enregistré"})
}

// MyDownloads handles GET /api/my-downloads/:userId.
func (h *DownloadsHandler) MyDownloads(c *fiber.Ctx) error {
	entries, err := h.downloads.MyDownloads(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"downloads": dto.NewDownloadEntryList(entries)})
}

// ServeImage handles GET /api/uploads/images/:name.
func (h *DownloadsHandler) ServeImage(c *fiber.Ctx) error {
	reader, err := h.store.OpenNamed(c.Context(), storage.KindImage, c.Params("name"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "Image introuvable")
	}
	return c.SendStream(reader)
}
