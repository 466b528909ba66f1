package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/api/dto"
	"github.com/simplon-hub/code-hub/internal/service"
)

// ActivationHandler exposes the three-step activation wizard endpoints.
type ActivationHandler struct {
	activation *service.ActivationService
}

// NewActivationHandler constructs handler.
func NewActivationHandler(activationService *service.ActivationService) *ActivationHandler {
	return &ActivationHandler{activation: activationService}
}

// SendCode handles POST /send-code. Resending goes through the same
// endpoint and overwrites the pending code.
func (h *ActivationHandler) SendCode(c *fiber.Ctx) error {
	var req dto.SendCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.activation.SendCode(c.Context(), req.Matricule, req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Code envoyé"})
}

// VerifyCode handles POST /verify-code.
func (h *ActivationHandler) VerifyCode(c *fiber.Ctx) error {
	var req dto.VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.activation.VerifyCode(c.Context(), req.Email, req.Code); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Code vérifié"})
}

// Activate handles POST /api/activation.
func (h *ActivationHandler) Activate(c *fiber.Ctx) error {
	var req dto.ActivationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Confirmation != "" && req.Confirmation != req.Password {
		return fiber.NewError(http.StatusBadRequest, "Les mots de passe ne correspondent pas")
	}

	user, err := h.activation.Activate(c.Context(), req.Matricule, req.Email, req.Pseudo, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Compte créé",
		"role":    dto.NewUserResponse(user).Role,
	})
}
