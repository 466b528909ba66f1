package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/api/dto"
	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/domain"
	"github.com/simplon-hub/code-hub/internal/service"
)

// AdminHandler exposes the administrator-only surfaces.
type AdminHandler struct {
	admin      *service.AdminService
	activities *service.ActivityService
	export     *service.ExportService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, activityService *service.ActivityService, exportService *service.ExportService) *AdminHandler {
	return &AdminHandler{admin: adminService, activities: activityService, export: exportService}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.admin.ListUsers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"users": dto.NewUserList(users)})
}

// ToggleUserStatus handles PATCH /api/admin/users/:id/status.
func (h *AdminHandler) ToggleUserStatus(c *fiber.Ctx) error {
	user, err := h.admin.ToggleStatus(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	if err := h.admin.DeleteUser(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Compte supprimé"})
}

// ListActivities handles GET /api/admin/activities?type=.
func (h *AdminHandler) ListActivities(c *fiber.Ctx) error {
	activities, err := h.activities.List(c.Context(), domain.ActivityType(c.Query("type")))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"activities": dto.NewActivityList(activities)})
}

// DeleteActivity handles DELETE /api/admin/activity/:id.
func (h *AdminHandler) DeleteActivity(c *fiber.Ctx) error {
	if err := h.activities.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Notification supprimée"})
}

// ClearActivities handles DELETE /api/admin/activities.
func (h *AdminHandler) ClearActivities(c *fiber.Ctx) error {
	if err := h.activities.Clear(c.Context()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Notifications supprimées"})
}

// Export handles GET /api/admin/export.
func (h *AdminHandler) Export(c *fiber.Ctx) error {
	blob, err := h.export.Build(c.Context())
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+h.export.Filename(time.Now())+`"`)
	return c.Send(blob)
}
