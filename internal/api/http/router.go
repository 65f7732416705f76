package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/village-portal/internal/api/http/handlers"
	"github.com/spec-kit/village-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Resident       *handlers.ResidentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	signedIn := authGroup.Group("", cfg.AuthMiddleware.Handle)
	signedIn.Post("/logout", cfg.Auth.Logout)
	signedIn.Get("/me", cfg.Auth.Me)
	signedIn.Put("/me", cfg.Auth.UpdateProfile)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/residents", cfg.Admin.ListResidents)
	admin.Patch("/residents/:id/approval", cfg.Admin.SetApproval)
	admin.Get("/staff", cfg.Admin.ListStaff)
	admin.Post("/staff", cfg.Admin.CreateStaff)
	admin.Put("/staff/:id", cfg.Admin.UpdateStaff)
	admin.Delete("/staff/:id", cfg.Admin.DeleteStaff)
	admin.Get("/bids", cfg.Admin.ListBids)
	admin.Post("/bids", cfg.Admin.CreateBid)
	admin.Put("/bids/:id", cfg.Admin.UpdateBid)
	admin.Delete("/bids/:id", cfg.Admin.DeleteBid)
	admin.Post("/bids/:id/award", cfg.Admin.AwardBid)
	admin.Get("/bids/:id/submissions", cfg.Admin.ListSubmissions)
	admin.Get("/announcements", cfg.Admin.ListAnnouncements)
	admin.Post("/announcements", cfg.Admin.CreateAnnouncement)
	admin.Put("/announcements/:id", cfg.Admin.UpdateAnnouncement)
	admin.Delete("/announcements/:id", cfg.Admin.DeleteAnnouncement)
	admin.Get("/requests", cfg.Admin.ListRequests)
	admin.Patch("/requests/:id", cfg.Admin.UpdateRequest)

	resident := app.Group("/resident", cfg.AuthMiddleware.Handle, auth.RequireResident())
	resident.Get("/dashboard", cfg.Resident.Dashboard)
	resident.Get("/announcements", cfg.Resident.ListAnnouncements)
	resident.Get("/bids", cfg.Resident.ListBids)
	resident.Post("/bids/:id/submissions", cfg.Resident.SubmitProposal)
	resident.Get("/requests", cfg.Resident.ListRequests)
	resident.Post("/requests", cfg.Resident.FileRequest)
}
