package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/simplon-hub/code-hub/internal/api/http/handlers"
	"github.com/simplon-hub/code-hub/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Activation     *handlers.ActivationHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Downloads      *handlers.DownloadsHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Path shapes match the historical API
// the clients already speak.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	// activation wizard, pre-auth
	app.Post("/send-code", cfg.Activation.SendCode)
	app.Post("/verify-code", cfg.Activation.VerifyCode)

	api := app.Group("/api")
	api.Post("/activation", cfg.Activation.Activate)
	api.Post("/login", cfg.Auth.Login)

	// downloads stay reachable without a session ("anonymous" tracking)
	api.Get("/download-file/:id", cfg.Downloads.DownloadFile)
	api.Post("/record-download", cfg.Downloads.RecordDownload)
	api.Get("/uploads/images/:name", cfg.Downloads.ServeImage)
	api.Get("/projects", cfg.Projects.List)
	api.Get("/projects/:id", cfg.Projects.Get)

	protected := api.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/logout", cfg.Auth.Logout)
	protected.Post("/projects", cfg.Projects.Create)
	protected.Post("/projects/archive", cfg.Projects.AssembleArchive)
	protected.Get("/projects/user/:id", cfg.Projects.ListByUser)
	protected.Delete("/projects/:id", cfg.Projects.Delete)
	protected.Get("/my-downloads/:userId", auth.RequireSelfOrAdmin("userId"), cfg.Downloads.MyDownloads)
	protected.Patch("/users/:id", auth.RequireSelfOrAdmin("id"), cfg.Auth.UpdateProfile)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/users", cfg.Admin.ListUsers)
	admin.Patch("/users/:id/status", cfg.Admin.ToggleUserStatus)
	admin.Delete("/users/:id", cfg.Admin.DeleteUser)
	admin.Get("/activities", cfg.Admin.ListActivities)
	admin.Delete("/activities", cfg.Admin.ClearActivities)
	admin.Delete("/activity/:id", cfg.Admin.DeleteActivity)
	admin.Get("/export", cfg.Admin.Export)
}
