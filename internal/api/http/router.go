package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/resolvenow/complaint-service/internal/api/http/handlers"
	"github.com/resolvenow/complaint-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Profiles       *handlers.ProfilesHandler
	Complaints     *handlers.ComplaintsHandler
	Admin          *handlers.AdminHandler
	Categories     *handlers.CategoriesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Profiles.Register)
	authGroup.Post("/login", cfg.Profiles.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	authed.Get("/auth/me", cfg.Profiles.Me)
	authed.Get("/categories", cfg.Categories.List)

	complaints := authed.Group("/complaints")
	complaints.Post("/", cfg.Complaints.Create)
	complaints.Get("/", cfg.Complaints.List)
	complaints.Get("/:id", cfg.Complaints.Get)

	admin := authed.Group("/admin", auth.RequireAdmin())
	admin.Get("/complaints", cfg.Admin.ListComplaints)
	admin.Get("/complaints/summary", cfg.Admin.Summary)
	admin.Patch("/complaints/:id/status", cfg.Admin.UpdateStatus)
	admin.Post("/categories", cfg.Admin.CreateCategory)
	admin.Put("/categories/:id", cfg.Admin.UpdateCategory)
}
