package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/api/dto"
	"github.com/simplon-hub/code-hub/internal/auth"
	"github.com/simplon-hub/code-hub/internal/service"
)

// AuthHandler exposes login/logout and profile endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.auth.Login(c.Context(), req.Identifier, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"user":     dto.NewUserResponse(result.User),
		"auth":     dto.AuthResponse{Token: result.Token, ExpiresAt: result.ExpiresAt},
		"redirect": result.Redirect,
	})
}

// Logout handles POST /api/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}
	h.auth.Logout(c.Context(), principal.User)
	return c.JSON(fiber.Map{"message": "Déconnecté"})
}

// UpdateProfile handles PATCH /api/users/:id.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.auth.UpdateProfile(c.Context(), c.Params("id"), service.ProfileUpdate{
		Pseudo:   req.Pseudo,
		Prenom:   req.Prenom,
		Nom:      req.Nom,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}
