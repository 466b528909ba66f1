package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/simplon-hub/code-hub/internal/domain"
)

func principalApp(principal *Principal) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	})
	app.Get("/self/:userId", RequireSelfOrAdmin("userId"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func statusOf(t *testing.T, app *fiber.App, path string) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRequireSelfOrAdmin(t *testing.T) {
	student := &Principal{User: &domain.User{ID: "u1"}, Role: domain.RoleStudent}
	app := principalApp(student)

	require.Equal(t, http.StatusOK, statusOf(t, app, "/self/u1"))
	// another user's resource is off limits for a student
	require.Equal(t, http.StatusForbidden, statusOf(t, app, "/self/u2"))

	admin := &Principal{User: &domain.User{ID: "a1"}, Role: domain.RoleAdmin}
	require.Equal(t, http.StatusOK, statusOf(t, principalApp(admin), "/self/u2"))

	require.Equal(t, http.StatusUnauthorized, statusOf(t, principalApp(nil), "/self/u1"))
}

func TestRequireAdmin(t *testing.T) {
	student := &Principal{User: &domain.User{ID: "u1"}, Role: domain.RoleStudent}
	require.Equal(t, http.StatusForbidden, statusOf(t, principalApp(student), "/admin"))

	admin := &Principal{User: &domain.User{ID: "a1"}, Role: domain.RoleAdmin}
	require.Equal(t, http.StatusOK, statusOf(t, principalApp(admin), "/admin"))

	require.Equal(t, http.StatusUnauthorized, statusOf(t, principalApp(nil), "/admin"))
}
